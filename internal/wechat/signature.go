package wechat

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

// CheckSignature 校验微信服务器签名
// 规则：token、timestamp、nonce字典序排序后拼接，取SHA1十六进制摘要与signature比对
func CheckSignature(token, timestamp, nonce, signature string) bool {
	params := []string{token, timestamp, nonce}
	sort.Strings(params)
	sum := sha1.Sum([]byte(strings.Join(params, "")))
	expect := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expect), []byte(signature)) == 1
}
