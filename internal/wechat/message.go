package wechat

import (
	"encoding/xml"
	"errors"
	"time"
)

// 消息类型
const (
	MsgTypeText  = "text"
	MsgTypeImage = "image"
	MsgTypeEvent = "event"
)

// 事件类型
const (
	EventSubscribe = "subscribe"
	EventClick     = "CLICK"
)

var ErrMalformedEnvelope = errors.New("malformed message envelope")

// Message 微信推送的消息体
// 事件消息带Event/EventKey，文本消息带Content，图片消息带PicUrl/MediaId
type Message struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   string   `xml:"ToUserName"`
	FromUserName string   `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      string   `xml:"MsgType"`
	Event        string   `xml:"Event"`
	EventKey     string   `xml:"EventKey"`
	Content      string   `xml:"Content"`
	PicUrl       string   `xml:"PicUrl"`
	MediaId      string   `xml:"MediaId"`
}

// ParseMessage 解析消息XML，缺少必要字段视为非法消息
func ParseMessage(body []byte) (*Message, error) {
	var msg Message
	if err := xml.Unmarshal(body, &msg); err != nil {
		return nil, ErrMalformedEnvelope
	}
	if msg.MsgType == "" || msg.FromUserName == "" || msg.ToUserName == "" {
		return nil, ErrMalformedEnvelope
	}
	return &msg, nil
}

type cdata struct {
	Text string `xml:",cdata"`
}

// TextReply 回复的文本消息，除CreateTime外全部CDATA包裹
type TextReply struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   cdata    `xml:"ToUserName"`
	FromUserName cdata    `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      cdata    `xml:"MsgType"`
	Content      cdata    `xml:"Content"`
}

// NewTextReply 构造回复：收发双方互换，CreateTime取当前Unix秒
func NewTextReply(inbound *Message, content string, now time.Time) *TextReply {
	return &TextReply{
		ToUserName:   cdata{inbound.FromUserName},
		FromUserName: cdata{inbound.ToUserName},
		CreateTime:   now.Unix(),
		MsgType:      cdata{MsgTypeText},
		Content:      cdata{content},
	}
}

// Render 输出回复XML
func (r *TextReply) Render() ([]byte, error) {
	return xml.Marshal(r)
}
