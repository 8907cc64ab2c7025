package logic

import (
	"fmt"
	"strings"

	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/deepseek"
)

// 优化器的系统提示词，约束模型只输出可直接使用的提示词文本
const optimizeSystemPrompt = `你是一位专业的 AI 提示词工程专家。你的任务是根据用户提供的意图，生成一个结构化、高质量的提示词。

## 优化原则

1. **明确角色设定**：为 AI 设定一个具体的专业角色，明确其专业领域和能力边界。

2. **具体任务描述**：将用户的模糊意图转化为清晰、可执行的任务指令。

3. **输出格式规范**：根据任务类型，指定合适的输出格式（列表、段落、表格、代码等）。

4. **上下文信息补充**：添加必要的背景信息和约束条件，帮助 AI 更好地理解任务。

5. **示例引导**：在适当情况下提供输入输出示例，让 AI 明确期望的结果。

6. **边界设定**：明确 AI 应该做什么、不应该做什么，避免偏离主题。

## 输出格式

直接输出优化后的提示词，使用 Markdown 格式组织内容。结构通常包含：
- 角色定义
- 任务描述
- 具体要求
- 输出格式
- 注意事项（如有必要）

不要添加任何解释性文字，直接给出可以使用的提示词。`

func targetModelHint(targetModel string) string {
	switch targetModel {
	case "chatgpt":
		return "针对 ChatGPT 优化，可以利用其强大的对话和创意能力。"
	case "claude":
		return "针对 Claude 优化，可以利用其深度分析和长文本处理能力。"
	case "deepseek":
		return "针对 DeepSeek 优化，可以利用其代码和推理能力。"
	default:
		return "生成通用提示词，适用于主流 AI 模型。"
	}
}

func languageHint(language string) string {
	if language == "en" {
		return "Please generate the optimized prompt in English."
	}
	return "请使用中文生成优化后的提示词。"
}

func buildOptimizeMessages(p *models.ParamOptimize) []deepseek.Message {
	userMessage := fmt.Sprintf(`## 用户意图
%s

## 优化要求
- %s
- %s

请根据以上意图生成一个专业、实用的提示词。`,
		p.Intention, targetModelHint(p.TargetModel), languageHint(p.Language))

	return []deepseek.Message{
		{Role: "system", Content: optimizeSystemPrompt},
		{Role: "user", Content: userMessage},
	}
}

// buildCategoryList 把分类表渲染成模型可读的候选列表
func buildCategoryList(categories []models.Category) string {
	var b strings.Builder
	b.WriteString("可选的一级分类和对应的二级分类：\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "\n【%s】(id: %s)\n", cat.Name, cat.ID)
		fmt.Fprintf(&b, "  描述: %s\n", cat.Description)
		if len(cat.Subcategories) > 0 {
			b.WriteString("  二级分类:\n")
			for _, sub := range cat.Subcategories {
				fmt.Fprintf(&b, "    - %s (id: %s)\n", sub.Name, sub.ID)
			}
		}
	}
	return b.String()
}

func buildMetadataSystemPrompt(categoryList string) string {
	return fmt.Sprintf(`你是一个专业的提示词分析专家。根据用户提供的提示词内容和原始意图，你需要生成以下元数据信息。

## 重要：分类必须从以下列表中选择

%s

## 输出要求

请以 JSON 格式返回以下字段：

1. title: 一个简洁、吸引人的标题（5-30个字符），能概括提示词的核心功能
2. description: 简短描述这个提示词的用途和价值（20-100个字符）
3. categoryId: 从上面列表中选择最匹配的一级分类ID
4. categoryName: 对应的一级分类名称
5. subcategoryId: 从上面列表中选择最匹配的二级分类ID（可选，如果有合适的）
6. subcategoryName: 对应的二级分类名称（可选）
7. taskType: 任务类型，只能是 text 或 image（文生文或文生图）
8. targetTool: 目标工具，如：ChatGPT、Claude、DeepSeek、通用等
9. tags: 3-5个相关标签的数组，帮助用户搜索

## 输出格式

请严格按照以下 JSON 格式返回，不要添加任何其他内容：
{
  "title": "标题",
  "description": "描述",
  "categoryId": "一级分类ID",
  "categoryName": "一级分类名称",
  "subcategoryId": "二级分类ID或null",
  "subcategoryName": "二级分类名称或null",
  "taskType": "text",
  "targetTool": "目标工具",
  "tags": ["标签1", "标签2", "标签3"]
}`, categoryList)
}

func buildMetadataMessages(p *models.ParamMetadata, categories []models.Category) []deepseek.Message {
	tool := p.TargetModel
	if tool == "" {
		tool = "通用"
	}
	lang := "中文"
	if p.Language == "en" {
		lang = "英文"
	}
	userMessage := fmt.Sprintf(`## 提示词内容
%s

## 用户原始意图
%s

## 额外信息
- 目标模型偏好: %s
- 语言: %s

请分析这个提示词并生成元数据。务必从给定的分类列表中选择最匹配的分类。`,
		truncateRunes(p.Content, 2000), p.Intention, tool, lang)

	return []deepseek.Message{
		{Role: "system", Content: buildMetadataSystemPrompt(buildCategoryList(categories))},
		{Role: "user", Content: userMessage},
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
