// Package analyzer 从条目文本中提取粗粒度的主题与信号。
// 全部是固定关键词的子串匹配：允许误报，这是启发式而不是 NLP。
// 关键词表、提示词表与停用词表都集中在本包内，方便整体替换。
package analyzer

import "strings"

// TopicDef 描述一个可聚合的主题
type TopicDef struct {
	Name        string
	Description string
	Keywords    []string
}

// TopicDefs 是趋势榜的固定主题集合，顺序即展示顺序
var TopicDefs = []TopicDef{
	{Name: "AI Agents", Description: "Autonomous systems coordinating tasks.", Keywords: []string{"agent", "autonomous", "workflow"}},
	{Name: "LLM Infrastructure", Description: "Scaling inference and orchestration.", Keywords: []string{"inference", "vector", "orchestration", "llm"}},
	{Name: "Semiconductors", Description: "Advanced nodes and supply chains.", Keywords: []string{"chip", "semiconductor", "fab", "nm"}},
	{Name: "Robotics", Description: "Humanoid and industrial automation.", Keywords: []string{"robot", "humanoid", "automation"}},
	{Name: "Battery Tech", Description: "Next-gen energy storage.", Keywords: []string{"battery", "solid-state", "lithium"}},
	{Name: "Privacy & Security", Description: "Data protection and zero trust.", Keywords: []string{"privacy", "security", "zero trust", "encryption", "breach"}},
}

// FallbackTopic 收拢所有未命中任何主题关键词的条目，保证条目在趋势汇总中不会无主
const FallbackTopic = "Other"

var fundingPatterns = []string{"raised", "series", "funding"}
var supplyChainPatterns = []string{"supplier", "manufactur", "fab", "partnered"}

// ExtractTopics 返回文本命中的全部主题名；零命中时返回空列表，由调用方决定兜底主题
func ExtractTopics(text string) []string {
	t := strings.ToLower(text)
	var out []string
	for _, def := range TopicDefs {
		for _, k := range def.Keywords {
			if strings.Contains(t, k) {
				out = append(out, def.Name)
				break
			}
		}
	}
	return out
}

// ExtractHints 检测融资与供应链相关用语
func ExtractHints(text string) (fundingHint, supplyChainHint bool) {
	t := strings.ToLower(text)
	for _, p := range fundingPatterns {
		if strings.Contains(t, p) {
			fundingHint = true
			break
		}
	}
	for _, p := range supplyChainPatterns {
		if strings.Contains(t, p) {
			supplyChainHint = true
			break
		}
	}
	return fundingHint, supplyChainHint
}
