package common

import "os"

const (
	// ConsultPrompt AI咨询的角色设定
	ConsultPrompt = "你是一位专业的植物养护专家，请根据用户的植物类型和描述回答养护问题，给出具体、可操作的建议，包括浇水、施肥、光照、换盆等方面。"
)

// WxToken 微信服务器验证token
var WxToken = "plant_care_token_2024"

var WxAPPID string
var WxAPPSecret string
var WxTemplateID string

// 百度AI植物识别
var BaiduAPIKey string
var BaiduSecretKey string

var HunyuanToken string
var HunyuanModel = "hunyuan-turbos-latest"
var HunyuanBaseUrl = "https://api.hunyuan.cloud.tencent.com/v1"

func init() {
	if token := os.Getenv("WECHAT_TOKEN"); token != "" {
		WxToken = token
	}
	WxAPPID = os.Getenv("WX_APPID")
	WxAPPSecret = os.Getenv("WX_APP_SECRET")
	WxTemplateID = os.Getenv("WX_TEMPLATE_ID")
	BaiduAPIKey = os.Getenv("BAIDU_API_KEY")
	BaiduSecretKey = os.Getenv("BAIDU_SECRET_KEY")
	HunyuanToken = os.Getenv("HUNYUAN_TOKEN")
}
