package logic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 测试微信访问令牌响应结构
func TestWxAccessTokenResponse(t *testing.T) {
	response := WxAccessTokenResponse{
		AccessToken: "test_access_token",
		ExpiresIn:   7200,
		ErrCode:     0,
		ErrMsg:      "",
	}

	assert.Equal(t, "test_access_token", response.AccessToken)
	assert.Equal(t, 7200, response.ExpiresIn)
	assert.Equal(t, 0, response.ErrCode)
	assert.Equal(t, "", response.ErrMsg)
}

// 测试浇水提醒消息结构
func TestWxTemplateMessage(t *testing.T) {
	data := map[string]interface{}{
		"thing1": map[string]string{"value": "浇水提醒"},
		"thing2": map[string]string{"value": "「绿萝」已经7天没有浇水了"},
		"time3":  map[string]string{"value": time.Now().Format("2006-01-02 15:04:05")},
		"thing4": map[string]string{"value": "记得回复「浇水 绿萝」记录一下"},
	}

	message := WxTemplateMessage{
		Touser:     "test_openid",
		TemplateID: "test_template_id",
		Page:       "pages/index/index",
		Data:       data,
	}

	assert.Equal(t, "test_openid", message.Touser)
	assert.Equal(t, "test_template_id", message.TemplateID)
	assert.Equal(t, "pages/index/index", message.Page)
	assert.NotNil(t, message.Data)
	assert.Len(t, message.Data, 4)
}

// 测试微信订阅消息响应结构
func TestWxTemplateResponse(t *testing.T) {
	response := WxTemplateResponse{
		ErrCode: 0,
		ErrMsg:  "",
		MsgID:   123456789,
	}

	assert.Equal(t, 0, response.ErrCode)
	assert.Equal(t, "", response.ErrMsg)
	assert.Equal(t, int64(123456789), response.MsgID)
}

// 测试自定义菜单结构，CLICK的key要与消息处理一致
func TestPlantCareMenu(t *testing.T) {
	menu := plantCareMenu()
	assert.Len(t, menu.Button, 3)

	jsonData, err := json.Marshal(menu)
	assert.NoError(t, err)
	assert.Contains(t, string(jsonData), "CARE_TIPS")
	assert.Contains(t, string(jsonData), "ABOUT")
	assert.Contains(t, string(jsonData), "click")
}

// 测试识别结果结构
func TestIdentifyResult(t *testing.T) {
	ok := IdentifyResult{Success: true, Name: "绿萝", Score: 0.96}
	assert.True(t, ok.Success)
	assert.Equal(t, "绿萝", ok.Name)
	assert.InDelta(t, 0.96, ok.Score, 0.001)

	fail := IdentifyResult{Success: false, Message: "未能识别出植物类型"}
	assert.False(t, fail.Success)
	assert.NotEmpty(t, fail.Message)
}

// 测试养护类型验证
func TestCareTypeValidation(t *testing.T) {
	validTypes := []string{"water", "fertilize"}
	invalidTypes := []string{"", "other", "WATER", "FERTILIZE", "Water"}

	for _, testType := range validTypes {
		assert.Contains(t, validTypes, testType, "类型应该有效: %s", testType)
	}

	for _, testType := range invalidTypes {
		assert.NotContains(t, validTypes, testType, "类型应该无效: %s", testType)
	}
}

// 测试OpenID格式验证
func TestOpenIDValidation(t *testing.T) {
	validOpenIDs := []string{
		"test_openid_123",
		"wx_openid_456",
		"user_openid_789",
	}

	invalidOpenIDs := []string{
		"",
		"   ",
		"a", // 太短
	}

	for _, openid := range validOpenIDs {
		assert.NotEmpty(t, openid, "OpenID应该有效: %s", openid)
		assert.True(t, len(openid) > 5, "OpenID应该足够长: %s", openid)
	}

	for _, openid := range invalidOpenIDs {
		assert.True(t, openid == "" || len(openid) <= 5, "OpenID应该无效: %s", openid)
	}
}
