package logic

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/deepseek"
)

// ErrEmptyCompletion 模型返回了空内容
var ErrEmptyCompletion = errors.New("无法生成元数据")

// tags 缺失或非法时的兜底标签
var defaultTags = []string{"AI", "提示词", "效率"}

var llm deepseek.LLMClient

// InitLLM 注入 LLM 客户端，测试里可以换成假实现
func InitLLM(client deepseek.LLMClient) {
	llm = client
}

// OpenOptimizeStream 发起一次流式优化调用，中继逻辑在 controller 层。
// Key 没配就地拒绝，不去碰上游。
func OpenOptimizeStream(ctx context.Context, p *models.ParamOptimize) (*deepseek.Stream, error) {
	if !llm.Configured() {
		return nil, deepseek.ErrNotConfigured
	}
	p.ApplyDefaults()
	return llm.CompleteStreaming(ctx, buildOptimizeMessages(p), 0.7, 2048)
}

// GenerateMetadata 让模型给提示词生成入库元数据。
// 分类表每次调用现查，保证模型看到的候选集和校验用的是同一份。
func GenerateMetadata(ctx context.Context, p *models.ParamMetadata) (*models.PromptMetadata, error) {
	if !llm.Configured() {
		return nil, deepseek.ErrNotConfigured
	}
	categories, err := mysql.GetCategoryList()
	if err != nil {
		return nil, err
	}
	return generateMetadataWith(ctx, llm, p, categories)
}

func generateMetadataWith(ctx context.Context, client deepseek.LLMClient, p *models.ParamMetadata, categories []models.Category) (*models.PromptMetadata, error) {
	if !client.Configured() {
		return nil, deepseek.ErrNotConfigured
	}
	reply, err := client.CompleteOnce(ctx, buildMetadataMessages(p, categories), 0.3, 800)
	if err != nil {
		return nil, err
	}
	if reply == "" {
		return nil, ErrEmptyCompletion
	}

	meta, ok := parseMetadataReply(reply)
	if !ok {
		meta = fallbackMetadata(p, categories)
	}
	validateMetadata(meta, categories)
	return meta, nil
}

// parseMetadataReply 先整体按 JSON 解析，失败后再从回复里抠出第一个
// 完整的 {...} 对象重试。模型经常把 JSON 包在代码块或说明文字里。
func parseMetadataReply(reply string) (*models.PromptMetadata, bool) {
	meta := new(models.PromptMetadata)
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), meta); err == nil {
		return meta, true
	}
	obj, ok := extractJSONObject(reply)
	if !ok {
		return nil, false
	}
	meta = new(models.PromptMetadata)
	if err := json.Unmarshal([]byte(obj), meta); err != nil {
		return nil, false
	}
	return meta, true
}

// extractJSONObject 返回 s 中第一个括号配平的 {...} 子串，
// 扫描时跳过字符串字面量里的花括号
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// fallbackMetadata 回复完全不可解析时，用意图文本和第一个分类兜底
func fallbackMetadata(p *models.ParamMetadata, categories []models.Category) *models.PromptMetadata {
	meta := &models.PromptMetadata{
		Title:       truncateRunes(p.Intention, 30),
		Description: truncateRunes(p.Intention, 100),
		CategoryID:  "content-creation",
		TaskType:    "text",
		TargetTool:  p.TargetModel,
		Tags:        append([]string(nil), defaultTags...),
	}
	if len(categories) > 0 {
		meta.CategoryID = categories[0].ID
		meta.CategoryName = categories[0].Name
	}
	if meta.TargetTool == "" || meta.TargetTool == "general" {
		meta.TargetTool = "通用"
	}
	return meta
}

// validateMetadata 对模型输出做强制校验，无论解析走了哪条路都要过这一遍：
// 分类以 ID 为准回填名称，ID 非法时按名称找回，再不行退到第一个分类；
// 二级分类必须属于最终确定的一级分类，否则清空。
func validateMetadata(meta *models.PromptMetadata, categories []models.Category) {
	var resolved *models.Category
	for i := range categories {
		if categories[i].ID == meta.CategoryID {
			resolved = &categories[i]
			break
		}
	}
	if resolved == nil {
		for i := range categories {
			if categories[i].Name == meta.CategoryName {
				resolved = &categories[i]
				break
			}
		}
	}
	if resolved == nil && len(categories) > 0 {
		resolved = &categories[0]
	}
	if resolved != nil {
		meta.CategoryID = resolved.ID
		meta.CategoryName = resolved.Name
	}

	if meta.SubcategoryID != "" && resolved != nil {
		var subName string
		for _, sub := range resolved.Subcategories {
			if sub.ID == meta.SubcategoryID {
				subName = sub.Name
				break
			}
		}
		if subName == "" {
			meta.SubcategoryID = ""
			meta.SubcategoryName = ""
		} else {
			meta.SubcategoryName = subName
		}
	} else {
		meta.SubcategoryID = ""
		meta.SubcategoryName = ""
	}

	if meta.TaskType != "image" {
		meta.TaskType = "text"
	}
	if meta.TargetTool == "" {
		meta.TargetTool = "通用"
	}
	if len(meta.Tags) == 0 {
		meta.Tags = append([]string(nil), defaultTags...)
	}
	if len(meta.Tags) > 10 {
		meta.Tags = meta.Tags[:10]
	}
	meta.Title = truncateRunes(meta.Title, 100)
	meta.Description = truncateRunes(meta.Description, 500)
}
