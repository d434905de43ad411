package wechat

import (
	"fmt"
	"time"
)

// FormatRelativeTime 相对时间展示
// 1小时内"刚刚"；当天"N小时前"；前一个自然日"昨天"；2-6天"N天前"；更早显示日期
func FormatRelativeTime(t, now time.Time) string {
	if now.Sub(t) < time.Hour {
		return "刚刚"
	}
	days := calendarDays(t, now)
	if days == 0 {
		return fmt.Sprintf("%d小时前", int(now.Sub(t).Hours()))
	}
	if days == 1 {
		return "昨天"
	}
	if days <= 6 {
		return fmt.Sprintf("%d天前", days)
	}
	return t.Format("2006年1月2日")
}

// calendarDays 两个时间点之间相差的自然日数量
// 取出日历日期后在UTC重建午夜再相减，夏令时的23小时日不会少算一天
func calendarDays(t, now time.Time) int {
	t = t.In(now.Location())
	tMid := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	nowMid := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(nowMid.Sub(tMid) / (24 * time.Hour))
}
