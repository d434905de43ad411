package logic

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"plantcare-backend/internal/common"
)

// IdentifyResult 植物识别结果
type IdentifyResult struct {
	Success bool    `json:"success"`
	Name    string  `json:"name,omitempty"`
	Score   float64 `json:"score,omitempty"`
	Message string  `json:"message,omitempty"`
}

var (
	baiduToken       string
	baiduTokenExpire time.Time
)

// getBaiduAccessToken 获取百度AI访问令牌，提前5分钟刷新
func getBaiduAccessToken() (string, error) {
	if baiduToken != "" && time.Now().Before(baiduTokenExpire) {
		return baiduToken, nil
	}

	resp, err := http.PostForm("https://aip.baidubce.com/oauth/2.0/token", url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {common.BaiduAPIKey},
		"client_secret": {common.BaiduSecretKey},
	})
	if err != nil {
		return "", fmt.Errorf("获取百度access token失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %v", err)
	}
	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %v", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("百度API未返回access token: %s", string(body))
	}

	baiduToken = tokenResp.AccessToken
	baiduTokenExpire = time.Now().Add(time.Duration(tokenResp.ExpiresIn-300) * time.Second)
	return baiduToken, nil
}

// imageURLToBase64 下载图片并编码
func imageURLToBase64(imageURL string) (string, error) {
	resp, err := http.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("下载图片失败: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取图片失败: %v", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// IdentifyPlant 调用百度植物识别接口
func IdentifyPlant(imageURL string) (*IdentifyResult, error) {
	token, err := getBaiduAccessToken()
	if err != nil {
		return nil, err
	}

	imageBase64, err := imageURLToBase64(imageURL)
	if err != nil {
		return nil, err
	}

	apiURL := "https://aip.baidubce.com/rest/2.0/image-classify/v1/plant?access_token=" + token
	form := url.Values{
		"image":     {imageBase64},
		"baike_num": {"1"},
	}
	resp, err := http.Post(apiURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("植物识别请求失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %v", err)
	}
	var apiResp struct {
		Result []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"result"`
		ErrMsg string `json:"error_msg"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %v", err)
	}

	if len(apiResp.Result) == 0 {
		return &IdentifyResult{Success: false, Message: "未能识别出植物类型"}, nil
	}
	top := apiResp.Result[0]
	return &IdentifyResult{Success: true, Name: top.Name, Score: top.Score}, nil
}

// IdentifyAsync 公众号图片消息的异步识别入口
// 结果只记录日志，不会推送给用户
func IdentifyAsync(imageURL string) {
	result, err := IdentifyPlant(imageURL)
	if err != nil {
		log.Printf("异步植物识别失败: %v", err)
		return
	}
	if result.Success {
		log.Printf("异步植物识别成功: %s (置信度 %.2f)", result.Name, result.Score)
	} else {
		log.Printf("异步植物识别无结果: %s", result.Message)
	}
}

// IdentifyHandler REST识别接口，同步返回结果
func IdentifyHandler(c *gin.Context) {
	var req struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageURL == "" {
		c.JSON(400, gin.H{"error": "image_url required"})
		return
	}
	result, err := IdentifyPlant(req.ImageURL)
	if err != nil {
		c.JSON(500, gin.H{"error": "识别服务异常", "detail": err.Error()})
		return
	}
	c.JSON(200, gin.H{"result": result})
}
