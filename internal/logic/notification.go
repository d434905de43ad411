package logic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"plantcare-backend/internal/common"
)

// WxAccessTokenResponse 微信access token响应
type WxAccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

// WxTemplateMessage 微信订阅消息
type WxTemplateMessage struct {
	Touser     string                 `json:"touser"`
	TemplateID string                 `json:"template_id"`
	Page       string                 `json:"page"`
	Data       map[string]interface{} `json:"data"`
}

// WxTemplateResponse 微信订阅消息响应
type WxTemplateResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	MsgID   int64  `json:"msgid"`
}

var (
	accessToken     string
	accessTokenTime time.Time
	tokenExpiresIn  int
)

// GetWxAccessToken 获取微信access token，提前5分钟刷新
func GetWxAccessToken() (string, error) {
	if accessToken != "" && time.Now().Before(accessTokenTime.Add(time.Duration(tokenExpiresIn-300)*time.Second)) {
		return accessToken, nil
	}

	url := fmt.Sprintf("https://api.weixin.qq.com/cgi-bin/token?grant_type=client_credential&appid=%s&secret=%s",
		common.WxAPPID, common.WxAPPSecret)

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("获取access token失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %v", err)
	}

	var tokenResp WxAccessTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %v", err)
	}

	if tokenResp.ErrCode != 0 {
		return "", fmt.Errorf("微信API错误: %d - %s", tokenResp.ErrCode, tokenResp.ErrMsg)
	}

	accessToken = tokenResp.AccessToken
	accessTokenTime = time.Now()
	tokenExpiresIn = tokenResp.ExpiresIn

	log.Printf("获取新的access token成功，过期时间: %d秒", tokenExpiresIn)
	return accessToken, nil
}

// SendTemplateMessage 发送订阅消息
func SendTemplateMessage(openID, page string, data map[string]interface{}) error {
	token, err := GetWxAccessToken()
	if err != nil {
		return fmt.Errorf("获取access token失败: %v", err)
	}

	url := fmt.Sprintf("https://api.weixin.qq.com/cgi-bin/message/subscribe/send?access_token=%s", token)

	message := WxTemplateMessage{
		Touser:     openID,
		TemplateID: common.WxTemplateID,
		Page:       page,
		Data:       data,
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("发送请求失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %v", err)
	}

	var templateResp WxTemplateResponse
	if err := json.Unmarshal(body, &templateResp); err != nil {
		return fmt.Errorf("解析响应失败: %v", err)
	}

	if templateResp.ErrCode != 0 {
		return fmt.Errorf("发送订阅消息失败: %d - %s", templateResp.ErrCode, templateResp.ErrMsg)
	}

	log.Printf("发送订阅消息成功，消息ID: %d", templateResp.MsgID)
	return nil
}

// WxMenuButton 自定义菜单按钮
type WxMenuButton struct {
	Type      string         `json:"type,omitempty"`
	Name      string         `json:"name"`
	Key       string         `json:"key,omitempty"`
	SubButton []WxMenuButton `json:"sub_button,omitempty"`
}

// WxMenu 公众号自定义菜单
type WxMenu struct {
	Button []WxMenuButton `json:"button"`
}

// plantCareMenu CLICK事件的key与消息处理保持一致
func plantCareMenu() WxMenu {
	return WxMenu{
		Button: []WxMenuButton{
			{Type: "click", Name: "功能菜单", Key: "MENU"},
			{Type: "click", Name: "养护知识", Key: "CARE_TIPS"},
			{Type: "click", Name: "关于我们", Key: "ABOUT"},
		},
	}
}

// CreateWxMenu 调用微信接口创建自定义菜单
func CreateWxMenu() error {
	token, err := GetWxAccessToken()
	if err != nil {
		return fmt.Errorf("获取access token失败: %v", err)
	}

	url := fmt.Sprintf("https://api.weixin.qq.com/cgi-bin/menu/create?access_token=%s", token)

	jsonData, err := json.Marshal(plantCareMenu())
	if err != nil {
		return fmt.Errorf("序列化菜单失败: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("发送请求失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %v", err)
	}

	var menuResp WxTemplateResponse
	if err := json.Unmarshal(body, &menuResp); err != nil {
		return fmt.Errorf("解析响应失败: %v", err)
	}

	if menuResp.ErrCode != 0 {
		return fmt.Errorf("创建菜单失败: %d - %s", menuResp.ErrCode, menuResp.ErrMsg)
	}

	log.Printf("创建自定义菜单成功")
	return nil
}

// SendCareReminder 发送浇水提醒
func SendCareReminder(openID, plantName string, days int) error {
	data := map[string]interface{}{
		"thing1": map[string]string{"value": "浇水提醒"},
		"thing2": map[string]string{"value": fmt.Sprintf("「%s」已经%d天没有浇水了", plantName, days)},
		"time3":  map[string]string{"value": time.Now().Format("2006-01-02 15:04:05")},
		"thing4": map[string]string{"value": "记得回复「浇水 " + plantName + "」记录一下"},
	}

	return SendTemplateMessage(openID, "pages/index/index", data)
}
