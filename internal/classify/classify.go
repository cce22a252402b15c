// Package classify assigns a topic category to free-form task text.
package classify

import (
	"regexp"

	"github.com/mwliu/focusboard/internal/domain"
)

// rule pairs a keyword pattern with the category it selects.
type rule struct {
	pattern  *regexp.Regexp
	category domain.Category
}

// rules is evaluated in order; the first match wins. The order matters
// because the vocabularies overlap (学习 alone reads as Reflection, but 工作
// text often contains it too), so it must not be rearranged.
var rules = []rule{
	{regexp.MustCompile(`学会|明白|掌握`), domain.CategoryGrowth},
	{regexp.MustCompile(`发现|思考|学习`), domain.CategoryReflection},
	{regexp.MustCompile(`测试|项目|需求会|排期|产品|研发|对接|班课|灵犀|企微|mega|群发|班主任|一销|二销|讲师|灵云|裁剪|教研|CMS|盖亚|商城|工作`), domain.CategoryWork},
	{regexp.MustCompile(`心理学|考研|英语|单词|政治|马哲|近代史|毛概|腿姐|肖1000|空卡`), domain.CategoryExamPrep},
	{regexp.MustCompile(`视频|广播剧|音乐|B站|小红书|抖音`), domain.CategoryEntertainment},
	{regexp.MustCompile(`沟通`), domain.CategoryCommunication},
	{regexp.MustCompile(`副业`), domain.CategorySideProject},
}

// Category maps task text to one of the eight fixed tags. Total and
// deterministic: text matching no rule, including empty text, falls through
// to Life.
func Category(text string) domain.Category {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.category
		}
	}
	return domain.CategoryLife
}
