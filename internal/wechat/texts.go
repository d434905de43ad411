package wechat

// 静态回复文案

const welcomeText = `🌱 欢迎关注植物养护助手！

我可以帮你：
🔍 发送植物照片，AI识别品种
📝 记录每棵植物的养护过程
💡 获取专业养护建议

常用指令：
添加 植物名称 [类型] - 添加植物
浇水 植物名称 [备注] - 记录浇水
施肥 植物名称 [备注] - 记录施肥
详情 植物名称 - 查看植物详情
删除 植物名称 - 删除植物

也可以回复数字：
0 - 功能菜单
1 - 我的植物
2 - 养护知识
3 - 关于我们`

const menuText = `📋 功能菜单

添加 植物名称 [类型] - 添加植物
删除 植物名称 - 删除植物
浇水 植物名称 [备注] - 记录浇水
施肥 植物名称 [备注] - 记录施肥
详情 植物名称 - 查看植物详情
建议 植物类型 - 获取养护建议

1 - 我的植物
2 - 养护知识
3 - 关于我们

📷 直接发送植物照片可以AI识别品种`

const careTipsText = `📚 养护知识

💧 浇水三原则：
不干不浇、浇则浇透、见干见湿

☀️ 光照：
大多数绿植适合明亮散射光，
多肉和开花植物需要充足日照

🌡 温度：
多数植物适宜15-28℃，
冬季远离暖气片，夏季避免暴晒

🧪 施肥：
薄肥勤施，生长期每月1-2次，
冬季休眠期停止施肥

💡 发送「建议 绿植」获取分类建议`

const aboutText = `🌱 植物养护助手

记录你和植物的每一天。

📮 问题反馈：在公众号直接留言
🔗 更多功能请点击底部菜单进入应用

祝你的植物们茁壮成长！`

const unsupportedText = `感谢你的消息！

暂时只支持文字和图片消息，
回复 0 查看功能菜单。`

const imageAckText = `📷 已收到图片，正在识别植物品种…

识别需要一点时间，你可以先回复 1 查看已添加的植物。`

func defaultReply(content string) string {
	return `你说的是：「` + content + `」

我还不理解这句话，回复数字试试：
0 - 功能菜单
1 - 我的植物
2 - 养护知识
3 - 关于我们`
}
