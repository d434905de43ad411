package wechat

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"plantcare-backend/internal/store"
)

// AckBody 微信要求的兜底应答，出现内部错误时直接返回
const AckBody = "success"

// IdentifyFunc 图片消息的异步识别回调，结果不回传给用户
type IdentifyFunc func(picURL string)

// Dispatcher 解析消息并执行指令
type Dispatcher struct {
	store    store.UserPlantStore
	identify IdentifyFunc
	now      func() time.Time
	rules    []commandRule
}

// commandRule 指令规则，按优先级排列，命中即停
type commandRule struct {
	match  func(content string) (arg string, ok bool)
	handle func(d *Dispatcher, openid, arg string) (string, error)
}

func NewDispatcher(s store.UserPlantStore, identify IdentifyFunc) *Dispatcher {
	d := &Dispatcher{
		store:    s,
		identify: identify,
		now:      time.Now,
	}
	d.rules = commandRules
	return d
}

// SetNowFunc 替换时钟，仅用于测试
func (d *Dispatcher) SetNowFunc(now func() time.Time) {
	d.now = now
}

// Handle 处理POST消息体，任何解析或存储错误都降级为"success"应答
func (d *Dispatcher) Handle(body []byte) (out []byte) {
	out = []byte(AckBody)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("消息处理panic: %v", r)
			out = []byte(AckBody)
		}
	}()

	msg, err := ParseMessage(body)
	if err != nil {
		log.Printf("消息解析失败: %v", err)
		return out
	}
	content, err := d.dispatch(msg)
	if err != nil {
		log.Printf("消息处理失败: %v", err)
		return out
	}
	if content == "" {
		return out
	}
	reply, err := NewTextReply(msg, content, d.now()).Render()
	if err != nil {
		log.Printf("回复构造失败: %v", err)
		return out
	}
	return reply
}

// dispatch 按消息类型分流，返回回复文案，空串表示无需回复
func (d *Dispatcher) dispatch(msg *Message) (string, error) {
	switch msg.MsgType {
	case MsgTypeEvent:
		return d.handleEvent(msg)
	case MsgTypeText:
		return d.handleText(msg.FromUserName, strings.TrimSpace(msg.Content))
	case MsgTypeImage:
		return d.handleImage(msg)
	default:
		return unsupportedText, nil
	}
}

func (d *Dispatcher) handleEvent(msg *Message) (string, error) {
	switch msg.Event {
	case EventSubscribe:
		if _, err := d.store.GetUser(msg.FromUserName); err != nil {
			return "", err
		}
		return welcomeText, nil
	case EventClick:
		switch msg.EventKey {
		case "CARE_TIPS":
			return careTipsText, nil
		case "ABOUT":
			return aboutText, nil
		default:
			return menuText, nil
		}
	default:
		// 取关等事件不需要回复
		return "", nil
	}
}

func (d *Dispatcher) handleText(openid, content string) (string, error) {
	for _, rule := range d.rules {
		if arg, ok := rule.match(content); ok {
			return rule.handle(d, openid, arg)
		}
	}
	return defaultReply(content), nil
}

func (d *Dispatcher) handleImage(msg *Message) (string, error) {
	if msg.PicUrl != "" && d.identify != nil {
		// 识别结果只记录日志，不回传（见DESIGN.md）
		go d.identify(msg.PicUrl)
	}
	return imageAckText, nil
}

// 指令正则
var (
	reAdd       = regexp.MustCompile(`^添加\s*(.*)$`)
	reDelete    = regexp.MustCompile(`^删除\s*(.*)$`)
	reWater     = regexp.MustCompile(`^浇水\s*(.*)$`)
	reFertilize = regexp.MustCompile(`^施肥\s*(.*)$`)
	reDetail    = regexp.MustCompile(`^详情\s*(.*)$`)
	reAdvice    = regexp.MustCompile(`^建议\s*(.*)$`)
)

func prefixMatcher(re *regexp.Regexp) func(string) (string, bool) {
	return func(content string) (string, bool) {
		m := re.FindStringSubmatch(content)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
}

func exactOrContains(exact string, keywords ...string) func(string) (string, bool) {
	return func(content string) (string, bool) {
		if content == exact {
			return "", true
		}
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				return "", true
			}
		}
		return "", false
	}
}

// commandRules 指令表，顺序即优先级
var commandRules = []commandRule{
	{prefixMatcher(reAdd), (*Dispatcher).cmdAdd},
	{prefixMatcher(reDelete), (*Dispatcher).cmdDelete},
	{prefixMatcher(reWater), careCommand(store.CareWater, "💧", "浇水")},
	{prefixMatcher(reFertilize), careCommand(store.CareFertilize, "🌿", "施肥")},
	{prefixMatcher(reDetail), (*Dispatcher).cmdDetail},
	{exactOrContains("0", "菜单"), staticCommand(menuText)},
	{exactOrContains("1", "我的植物"), (*Dispatcher).cmdList},
	{exactOrContains("2", "养护", "知识"), staticCommand(careTipsText)},
	{prefixMatcher(reAdvice), (*Dispatcher).cmdAdvice},
	{exactOrContains("3", "关于", "联系"), staticCommand(aboutText)},
}

func staticCommand(text string) func(*Dispatcher, string, string) (string, error) {
	return func(*Dispatcher, string, string) (string, error) {
		return text, nil
	}
}

func (d *Dispatcher) cmdAdd(openid, arg string) (string, error) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return "请告诉我植物的名称，例如：\n添加 绿萝\n添加 绿萝 绿植", nil
	}
	name := fields[0]
	plantType := "其他"
	if len(fields) > 1 {
		plantType = fields[1]
	}
	plant, err := d.store.AddPlant(openid, name, plantType)
	if errors.Is(err, store.ErrPlantExists) {
		return fmt.Sprintf("你已经添加过「%s」了，发送「详情 %s」查看它的养护记录。", name, name), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`✅ 成功添加植物「%s」（%s）

现在可以：
浇水 %s - 记录浇水
施肥 %s - 记录施肥
详情 %s - 查看详情
删除 %s - 删除这棵植物`,
		plant.Name, plant.Type, plant.Name, plant.Name, plant.Name, plant.Name), nil
}

func (d *Dispatcher) cmdDelete(openid, arg string) (string, error) {
	if arg == "" {
		return "请告诉我要删除的植物名称，例如：\n删除 绿萝", nil
	}
	err := d.store.RemovePlant(openid, arg)
	if errors.Is(err, store.ErrPlantNotFound) {
		return fmt.Sprintf("没有找到植物「%s」，回复 1 查看你的植物列表。", arg), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑 已删除植物「%s」及它的全部养护记录。", arg), nil
}

func careCommand(careType, icon, verb string) func(*Dispatcher, string, string) (string, error) {
	return func(d *Dispatcher, openid, arg string) (string, error) {
		fields := strings.Fields(arg)
		if len(fields) == 0 {
			return fmt.Sprintf("请告诉我给哪棵植物%s，例如：\n%s 绿萝\n%s 绿萝 叶子有点黄", verb, verb, verb), nil
		}
		name := fields[0]
		note := strings.Join(fields[1:], " ")
		_, err := d.store.AddCareRecord(openid, name, careType, note)
		if errors.Is(err, store.ErrPlantNotFound) {
			return fmt.Sprintf("没有找到植物「%s」，请先发送：\n添加 %s", name, name), nil
		}
		if err != nil {
			return "", err
		}
		reply := fmt.Sprintf("%s 已记录「%s」的%s", icon, name, verb)
		if note != "" {
			reply += "\n📝 备注：" + note
		}
		reply += fmt.Sprintf("\n\n发送「详情 %s」查看养护记录。", name)
		return reply, nil
	}
}

func (d *Dispatcher) cmdDetail(openid, arg string) (string, error) {
	if arg == "" {
		return "请告诉我要查看的植物名称，例如：\n详情 绿萝", nil
	}
	plant, err := d.store.GetPlantDetail(openid, arg)
	if errors.Is(err, store.ErrPlantNotFound) {
		return fmt.Sprintf("没有找到植物「%s」，请先发送：\n添加 %s", arg, arg), nil
	}
	if err != nil {
		return "", err
	}
	return d.renderDetail(plant), nil
}

func (d *Dispatcher) renderDetail(p *store.Plant) string {
	now := d.now()
	var b strings.Builder
	fmt.Fprintf(&b, "🌱 %s【%s】\n", p.Name, p.Type)
	fmt.Fprintf(&b, "添加时间：%s\n", p.CreatedAt.Format("2006年1月2日"))
	b.WriteString("💧 浇水记录：" + lastCareText(p, store.CareWater, now) + "\n")
	b.WriteString("🌿 施肥记录：" + lastCareText(p, store.CareFertilize, now))

	if len(p.Records) > 0 {
		b.WriteString("\n\n📋 最近养护记录：")
		shown := 0
		for i := len(p.Records) - 1; i >= 0 && shown < 5; i-- {
			rec := p.Records[i]
			shown++
			fmt.Fprintf(&b, "\n%d. %s %s", shown, careLabel(rec.Type), FormatRelativeTime(rec.CreatedAt, now))
			if rec.Note != "" {
				b.WriteString("\n   📝 " + rec.Note)
			}
		}
	}
	return b.String()
}

func (d *Dispatcher) cmdList(openid, _ string) (string, error) {
	plants, err := d.store.ListPlants(openid)
	if err != nil {
		return "", err
	}
	if len(plants) == 0 {
		return "你还没有添加植物，发送：\n添加 植物名称 [类型]\n例如：添加 绿萝 绿植", nil
	}
	now := d.now()
	var b strings.Builder
	fmt.Fprintf(&b, "🌱 我的植物（%d）\n", len(plants))
	for i := range plants {
		p := &plants[i]
		fmt.Fprintf(&b, "\n%d. %s【%s】\n", i+1, p.Name, p.Type)
		fmt.Fprintf(&b, "   添加：%s\n", p.CreatedAt.Format("2006年1月2日"))
		b.WriteString("   💧 上次浇水：" + lastCareText(p, store.CareWater, now))
	}
	b.WriteString("\n\n发送「详情 植物名称」查看完整记录。")
	return b.String(), nil
}

func (d *Dispatcher) cmdAdvice(openid, arg string) (string, error) {
	if arg == "" {
		return "请告诉我植物类型，例如：\n建议 绿植\n建议 多肉\n建议 花卉", nil
	}
	return AdviceFor(arg), nil
}

func lastCareText(p *store.Plant, careType string, now time.Time) string {
	at, ok := p.LastCareAt(careType)
	if !ok {
		if careType == store.CareWater {
			return "还没浇过水"
		}
		return "暂无记录"
	}
	return FormatRelativeTime(at, now)
}

func careLabel(careType string) string {
	if careType == store.CareFertilize {
		return "🌿 施肥"
	}
	return "💧 浇水"
}
