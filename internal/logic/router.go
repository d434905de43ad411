package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"plantcare-backend/internal/common"
	"plantcare-backend/internal/db"
	"plantcare-backend/internal/store"
	"plantcare-backend/internal/wechat"
)

// SetupRouter 路由入口
// plantStore 为微信指令和REST接口共用的数据层
func SetupRouter(plantStore store.UserPlantStore) *gin.Engine {
	r := gin.Default()

	dispatcher := wechat.NewDispatcher(plantStore, IdentifyAsync)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 微信服务器验证与消息接收
	r.GET("/wechat/verify", WechatVerifyHandler)
	r.POST("/wechat/verify", WechatMessageHandler(dispatcher))

	r.GET("/api/plants", ListPlantsHandler(plantStore))
	r.GET("/api/plant/detail", PlantDetailHandler(plantStore))
	r.POST("/api/care", AddCareHandler(plantStore))
	r.POST("/api/ai/identify", IdentifyHandler)
	r.POST("/api/ai/consult", ConsultHandler)
	r.GET("/api/ai/consult/ws", ConsultStreamHandler)
	r.POST("/api/wxlogin", WxLoginHandler(plantStore))
	r.POST("/api/subscription/auth", SubscriptionAuthHandler)
	r.GET("/api/wechat/access-token", AccessTokenHandler)
	r.POST("/api/wechat/menu", MenuCreateHandler)

	return r
}

// WechatVerifyHandler 微信服务器握手
// 验证通过原样返回echostr，失败返回固定文案，HTTP状态始终200
func WechatVerifyHandler(c *gin.Context) {
	signature := c.Query("signature")
	timestamp := c.Query("timestamp")
	nonce := c.Query("nonce")
	echostr := c.Query("echostr")

	if wechat.CheckSignature(common.WxToken, timestamp, nonce, signature) {
		c.String(200, echostr)
		return
	}
	c.String(200, "验证失败")
}

// WechatMessageHandler 微信消息接收
func WechatMessageHandler(dispatcher *wechat.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(200, wechat.AckBody)
			return
		}
		c.Data(200, "text/xml; charset=utf-8", dispatcher.Handle(body))
	}
}

// ListPlantsHandler 植物列表
func ListPlantsHandler(plantStore store.UserPlantStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		openid := c.Query("openid")
		if openid == "" {
			c.JSON(400, gin.H{"error": "openid required"})
			return
		}
		plants, err := plantStore.ListPlants(openid)
		if err != nil {
			c.JSON(500, gin.H{"error": "db error"})
			return
		}
		c.JSON(200, gin.H{"plants": plants})
	}
}

// PlantDetailHandler 植物详情（含养护记录）
func PlantDetailHandler(plantStore store.UserPlantStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		openid := c.Query("openid")
		name := c.Query("name")
		if openid == "" || name == "" {
			c.JSON(400, gin.H{"error": "openid and name required"})
			return
		}
		plant, err := plantStore.GetPlantDetail(openid, name)
		if err == store.ErrPlantNotFound {
			c.JSON(404, gin.H{"error": "plant not found"})
			return
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "db error"})
			return
		}
		c.JSON(200, gin.H{"plant": plant})
	}
}

// AddCareHandler 添加养护记录
func AddCareHandler(plantStore store.UserPlantStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OpenID string `json:"openid"`
			Name   string `json:"name"`
			Type   string `json:"type"`
			Note   string `json:"note"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.OpenID == "" || req.Name == "" {
			c.JSON(400, gin.H{"error": "openid and name required"})
			return
		}
		if req.Type != store.CareWater && req.Type != store.CareFertilize {
			c.JSON(400, gin.H{"error": "type must be water or fertilize"})
			return
		}
		rec, err := plantStore.AddCareRecord(req.OpenID, req.Name, req.Type, req.Note)
		if err == store.ErrPlantNotFound {
			c.JSON(404, gin.H{"error": "plant not found"})
			return
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "db error"})
			return
		}
		c.JSON(200, gin.H{"record": rec})
	}
}

// SubscriptionAuthHandler 用户授权养护提醒
// 每次授权只推送一次，发送后由定时任务置回未授权
func SubscriptionAuthHandler(c *gin.Context) {
	var req struct {
		OpenID string `json:"openid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OpenID == "" {
		c.JSON(400, gin.H{"error": "openid required"})
		return
	}
	user, err := getOrCreateUserByOpenID(req.OpenID)
	if err != nil {
		c.JSON(500, gin.H{"error": "db error"})
		return
	}
	conn := db.GetDB()
	var sub db.Subscription
	err = conn.Where("user_id = ?", user.ID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = db.Subscription{UserID: user.ID, IsAuth: true}
		err = conn.Create(&sub).Error
	} else if err == nil {
		sub.IsAuth = true
		err = conn.Save(&sub).Error
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "db error"})
		return
	}
	c.JSON(200, gin.H{"message": "授权成功"})
}

// MenuCreateHandler 创建公众号自定义菜单
func MenuCreateHandler(c *gin.Context) {
	if err := CreateWxMenu(); err != nil {
		c.JSON(500, gin.H{"error": "wx api error", "detail": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "菜单创建成功"})
}

// AccessTokenHandler 获取缓存的access token
func AccessTokenHandler(c *gin.Context) {
	token, err := GetWxAccessToken()
	if err != nil {
		c.JSON(500, gin.H{"error": "wx api error", "detail": err.Error()})
		return
	}
	c.JSON(200, gin.H{"access_token": token})
}

// WxLoginHandler 微信登录，code换openid，首次登录自动建档
func WxLoginHandler(plantStore store.UserPlantStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Code     string `json:"code"`
			Nickname string `json:"nickname"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
			c.JSON(400, gin.H{"error": "code required"})
			return
		}
		url := fmt.Sprintf("https://api.weixin.qq.com/sns/jscode2session?appid=%s&secret=%s&js_code=%s&grant_type=authorization_code",
			common.WxAPPID, common.WxAPPSecret, req.Code)
		resp, err := http.Get(url)
		if err != nil {
			c.JSON(500, gin.H{"error": "wx api error", "detail": err.Error()})
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		var wxResp struct {
			OpenID string `json:"openid"`
			ErrMsg string `json:"errmsg"`
		}
		json.Unmarshal(body, &wxResp)
		if wxResp.OpenID == "" {
			c.JSON(400, gin.H{"error": "get openid failed", "detail": string(body)})
			return
		}
		if _, err := plantStore.GetUser(wxResp.OpenID); err != nil {
			c.JSON(500, gin.H{"error": "db error"})
			return
		}
		c.JSON(200, gin.H{"openid": wxResp.OpenID, "nickname": req.Nickname})
	}
}
