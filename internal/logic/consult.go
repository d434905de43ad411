package logic

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	tccommon "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	v20230901 "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/hunyuan/v20230901"
	"github.com/tmc/langchaingo/chains"
	langopenai "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/memory"
	"gorm.io/gorm"

	"plantcare-backend/internal/common"
	"plantcare-backend/internal/db"
)

const MaxConsultLen = 300
const consultHistoryWindow = 10

// getOrCreateUserByOpenID 通过openid获取或创建用户
func getOrCreateUserByOpenID(openid string) (*db.User, error) {
	var user db.User
	err := db.GetDB().Where("open_id = ?", openid).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = db.User{OpenID: openid}
		if err = db.GetDB().Create(&user).Error; err == nil {
			return &user, nil
		}
	}
	return nil, err
}

// ConsultHandler AI养护咨询接口
func ConsultHandler(c *gin.Context) {
	var req struct {
		OpenID    string `json:"openid"`
		Content   string `json:"content"`
		PlantType string `json:"plant_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OpenID == "" || req.Content == "" {
		c.JSON(400, gin.H{"error": "openid and content required"})
		return
	}
	if utf8.RuneCountInString(req.Content) > MaxConsultLen {
		c.JSON(400, gin.H{"error": "消息过长"})
		return
	}
	user, err := getOrCreateUserByOpenID(req.OpenID)
	if err != nil {
		c.JSON(500, gin.H{"error": "user error"})
		return
	}

	question := req.Content
	if req.PlantType != "" {
		question = "我的植物类型是" + req.PlantType + "。" + question
	}

	var history []db.Consultation
	db.GetDB().Where("user_id = ?", user.ID).
		Order("created_at desc").Limit(consultHistoryWindow).Find(&history)

	ctx := context.Background()
	chatMemory := memory.NewConversationWindowBuffer(consultHistoryWindow)
	chatMemory.ChatHistory.AddUserMessage(ctx, common.ConsultPrompt)
	for i := len(history) - 1; i >= 0; i-- {
		chatMemory.ChatHistory.AddUserMessage(ctx, history[i].Question)
		chatMemory.ChatHistory.AddAIMessage(ctx, history[i].Answer)
	}

	llm, _ := langopenai.New(
		langopenai.WithToken(common.HunyuanToken),
		langopenai.WithModel(common.HunyuanModel),
		langopenai.WithBaseURL(common.HunyuanBaseUrl))
	chain := chains.NewConversation(llm, chatMemory)
	answer, err := chains.Run(ctx, chain, question, chains.WithMaxTokens(500))
	if err != nil {
		c.JSON(500, gin.H{"error": "AI error"})
		return
	}

	db.GetDB().Create(&db.Consultation{UserID: user.ID, Question: req.Content, Answer: answer})
	c.JSON(200, gin.H{"reply": answer})
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ConsultStreamHandler websocket流式咨询
// 客户端发送一条 {"openid":"...","content":"..."}，服务端逐帧推送回答片段，
// 结束后推送 {"done":true}
func ConsultStreamHandler(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var req struct {
		OpenID  string `json:"openid"`
		Content string `json:"content"`
	}
	if err := conn.ReadJSON(&req); err != nil || req.OpenID == "" || req.Content == "" {
		conn.WriteJSON(gin.H{"error": "openid and content required"})
		return
	}
	if utf8.RuneCountInString(req.Content) > MaxConsultLen {
		conn.WriteJSON(gin.H{"error": "消息过长"})
		return
	}
	user, err := getOrCreateUserByOpenID(req.OpenID)
	if err != nil {
		conn.WriteJSON(gin.H{"error": "user error"})
		return
	}

	messages := []*v20230901.Message{
		{Role: tccommon.StringPtr("system"), Content: tccommon.StringPtr(common.ConsultPrompt)},
		{Role: tccommon.StringPtr("user"), Content: tccommon.StringPtr(req.Content)},
	}

	var answer strings.Builder
	err = HunyuanStream(messages, common.HunyuanModel, func(delta string) {
		answer.WriteString(delta)
		conn.WriteJSON(gin.H{"delta": delta})
	})
	if err != nil {
		log.Printf("流式咨询失败: %v", err)
		conn.WriteJSON(gin.H{"error": "AI error"})
		return
	}

	db.GetDB().Create(&db.Consultation{UserID: user.ID, Question: req.Content, Answer: answer.String()})
	conn.WriteJSON(gin.H{"done": true})
}
