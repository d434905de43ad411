package logic

import (
	"os"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	v20230901 "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/hunyuan/v20230901"
)

// HunyuanStream 调用腾讯云混元流式API，逐段回调onDelta
func HunyuanStream(messages []*v20230901.Message, model string, onDelta func(string)) error {
	credential := common.NewCredential(
		os.Getenv("TENCENTCLOUD_SECRETID"),
		os.Getenv("TENCENTCLOUD_SECRETKEY"),
	)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = "hunyuan.ap-guangzhou.tencentcloudapi.com"
	client, err := v20230901.NewClient(credential, "", cpf)
	if err != nil {
		return err
	}

	req := v20230901.NewChatCompletionsRequest()
	req.Model = common.StringPtr(model)
	req.Messages = messages
	req.Stream = common.BoolPtr(true)
	resp, err := client.ChatCompletions(req)
	if err != nil {
		return err
	}
	if resp != nil && resp.Response != nil && resp.Response.Choices != nil {
		for _, choice := range resp.Response.Choices {
			if choice.Delta != nil && choice.Delta.Content != nil {
				onDelta(*choice.Delta.Content)
			}
		}
	}
	return nil
}
