package wechat

// 养护建议表，按植物类型查询，未命中时返回"其他"的通用建议
var adviceTable = map[string]string{
	"绿植": `🌿 绿植养护建议

💧 浇水：见干见湿，盆土表面发干再浇透
☀️ 光照：散射光为主，避免暴晒
🌡 温度：15-25℃最适宜，冬季注意防寒
🧪 施肥：生长期每月1-2次稀薄液肥
✂️ 修剪：及时摘除黄叶，保持通风`,

	"多肉": `🌵 多肉养护建议

💧 浇水：宁干勿湿，土壤完全干透再浇
☀️ 光照：充足日照，每天4小时以上
🌡 温度：5-30℃均可，夏季高温控水
🧪 施肥：春秋各施一次缓释肥即可
🪴 土壤：颗粒土为主，排水要好`,

	"花卉": `🌸 花卉养护建议

💧 浇水：保持盆土微湿，花期不可缺水
☀️ 光照：多数花卉喜光，每天至少4小时
🌡 温度：15-28℃，花期避免温度骤变
🧪 施肥：花前增施磷钾肥，促进开花
✂️ 修剪：花后及时剪掉残花，节省养分`,

	"其他": `🌱 通用养护建议

💧 浇水：观察盆土干湿，见干见湿
☀️ 光照：根据品种调整，大多喜散射光
🌡 温度：避免低于5℃或高于35℃
🧪 施肥：薄肥勤施，休眠期停肥
💡 可以发送「建议 绿植」「建议 多肉」「建议 花卉」获取针对性建议`,
}

// AdviceFor 查询养护建议
func AdviceFor(plantType string) string {
	if text, ok := adviceTable[plantType]; ok {
		return text
	}
	return adviceTable["其他"]
}
