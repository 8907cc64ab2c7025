package logic

import (
	"context"
	"strings"
	"testing"

	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/deepseek"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply        string
	err          error
	unconfigured bool
	calls        int
}

func (f *fakeLLM) Configured() bool { return !f.unconfigured }

func (f *fakeLLM) CompleteOnce(_ context.Context, _ []deepseek.Message, _ float64, _ int) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) CompleteStreaming(_ context.Context, _ []deepseek.Message, _ float64, _ int) (*deepseek.Stream, error) {
	return nil, f.err
}

func testCategories() []models.Category {
	return []models.Category{
		{
			ID: "content-creation", Name: "内容创作", Description: "文章撰写、文案策划等创作场景",
			Subcategories: []models.Subcategory{
				{ID: "article-writing", CategoryID: "content-creation", Name: "文章撰写"},
				{ID: "copywriting", CategoryID: "content-creation", Name: "文案策划"},
			},
		},
		{
			ID: "software-development", Name: "程序开发", Description: "代码生成、调试排错等开发场景",
			Subcategories: []models.Subcategory{
				{ID: "code-generation", CategoryID: "software-development", Name: "代码生成"},
				{ID: "debugging", CategoryID: "software-development", Name: "调试排错"},
			},
		},
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", `好的，结果如下：{"a":1}，请查收。`, `{"a":1}`, true},
		{"nested", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"brace in string", `{"a":"}{"}`, `{"a":"}{"}`, true},
		{"unbalanced", `{"a":1`, "", false},
		{"no object", "抱歉，我无法处理这个请求。", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMetadataReply(t *testing.T) {
	reply := "分析完成：\n```json\n" +
		`{"title":"代码审查助手","description":"帮你审查代码","categoryId":"software-development","categoryName":"程序开发","subcategoryId":"code-generation","taskType":"text","targetTool":"DeepSeek","tags":["代码","审查"]}` +
		"\n```"
	meta, ok := parseMetadataReply(reply)
	require.True(t, ok)
	assert.Equal(t, "代码审查助手", meta.Title)
	assert.Equal(t, "software-development", meta.CategoryID)

	_, ok = parseMetadataReply("抱歉，我无法处理这个请求。")
	assert.False(t, ok)
}

// 模型给的分类 ID 是编的，但名称对得上，应按名称找回
func TestValidateMetadataRecoverByName(t *testing.T) {
	meta := &models.PromptMetadata{
		Title:         "标题",
		CategoryID:    "dev",
		CategoryName:  "程序开发",
		SubcategoryID: "code-generation",
		TaskType:      "text",
		Tags:          []string{"代码"},
	}
	validateMetadata(meta, testCategories())
	assert.Equal(t, "software-development", meta.CategoryID)
	assert.Equal(t, "程序开发", meta.CategoryName)
	// 二级分类属于找回后的一级分类，保留并回填名称
	assert.Equal(t, "code-generation", meta.SubcategoryID)
	assert.Equal(t, "代码生成", meta.SubcategoryName)
}

func TestValidateMetadataUnknownCategoryFallsBack(t *testing.T) {
	meta := &models.PromptMetadata{CategoryID: "nope", CategoryName: "不存在"}
	validateMetadata(meta, testCategories())
	assert.Equal(t, "content-creation", meta.CategoryID)
	assert.Equal(t, "内容创作", meta.CategoryName)
}

// 二级分类不属于最终确定的一级分类时必须清空
func TestValidateMetadataClearsForeignSubcategory(t *testing.T) {
	meta := &models.PromptMetadata{
		CategoryID:      "content-creation",
		SubcategoryID:   "code-generation",
		SubcategoryName: "代码生成",
	}
	validateMetadata(meta, testCategories())
	assert.Empty(t, meta.SubcategoryID)
	assert.Empty(t, meta.SubcategoryName)
}

func TestValidateMetadataTaskTypeCoerced(t *testing.T) {
	meta := &models.PromptMetadata{CategoryID: "content-creation", TaskType: "video"}
	validateMetadata(meta, testCategories())
	assert.Equal(t, "text", meta.TaskType)

	meta = &models.PromptMetadata{CategoryID: "content-creation", TaskType: "image"}
	validateMetadata(meta, testCategories())
	assert.Equal(t, "image", meta.TaskType)
}

func TestValidateMetadataTagsAndLimits(t *testing.T) {
	meta := &models.PromptMetadata{CategoryID: "content-creation"}
	validateMetadata(meta, testCategories())
	assert.Equal(t, []string{"AI", "提示词", "效率"}, meta.Tags)
	assert.Equal(t, "通用", meta.TargetTool)

	many := make([]string, 12)
	for i := range many {
		many[i] = "tag"
	}
	meta = &models.PromptMetadata{
		CategoryID:  "content-creation",
		Title:       strings.Repeat("长", 150),
		Description: strings.Repeat("述", 600),
		Tags:        many,
	}
	validateMetadata(meta, testCategories())
	assert.Len(t, meta.Tags, 10)
	assert.Len(t, []rune(meta.Title), 100)
	assert.Len(t, []rune(meta.Description), 500)
}

// 同样的输入校验两遍结果不变
func TestValidateMetadataIdempotent(t *testing.T) {
	meta := &models.PromptMetadata{CategoryID: "dev", CategoryName: "程序开发", TaskType: "video"}
	validateMetadata(meta, testCategories())
	first := *meta
	validateMetadata(meta, testCategories())
	assert.Equal(t, first, *meta)
}

func TestGenerateMetadataHappyPath(t *testing.T) {
	client := &fakeLLM{reply: "```json\n" +
		`{"title":"接口文档生成器","description":"根据代码生成接口文档","categoryId":"software-development","categoryName":"程序开发","subcategoryId":"code-generation","subcategoryName":"代码生成","taskType":"text","targetTool":"DeepSeek","tags":["文档","接口"]}` +
		"\n```"}
	p := &models.ParamMetadata{
		Intention: "帮我写一个生成接口文档的提示词",
		Content:   strings.Repeat("请根据给定的代码生成接口文档。", 10),
	}
	meta, err := generateMetadataWith(context.Background(), client, p, testCategories())
	require.NoError(t, err)
	assert.Equal(t, "接口文档生成器", meta.Title)
	assert.Equal(t, "software-development", meta.CategoryID)
	assert.Equal(t, "代码生成", meta.SubcategoryName)
	assert.Equal(t, []string{"文档", "接口"}, meta.Tags)
	assert.Equal(t, 1, client.calls)
}

// 回复完全不是 JSON 时走兜底，而不是报错
func TestGenerateMetadataFallback(t *testing.T) {
	client := &fakeLLM{reply: "抱歉，我无法处理这个请求。"}
	p := &models.ParamMetadata{
		Intention:   "帮我写一个周报总结的提示词，要求简洁明了",
		Content:     strings.Repeat("每周固定输出一份周报总结。", 10),
		TargetModel: "general",
	}
	meta, err := generateMetadataWith(context.Background(), client, p, testCategories())
	require.NoError(t, err)
	assert.Equal(t, truncateRunes(p.Intention, 30), meta.Title)
	assert.Equal(t, "content-creation", meta.CategoryID)
	assert.Equal(t, "内容创作", meta.CategoryName)
	assert.Empty(t, meta.SubcategoryID)
	assert.Equal(t, "text", meta.TaskType)
	assert.Equal(t, "通用", meta.TargetTool)
	assert.Equal(t, []string{"AI", "提示词", "效率"}, meta.Tags)
}

// Key 没配直接拒绝，一次上游调用都不能发
func TestGenerateMetadataNotConfigured(t *testing.T) {
	client := &fakeLLM{unconfigured: true}
	p := &models.ParamMetadata{Intention: "意图", Content: strings.Repeat("内容", 30)}
	_, err := generateMetadataWith(context.Background(), client, p, testCategories())
	assert.ErrorIs(t, err, deepseek.ErrNotConfigured)
	assert.Equal(t, 0, client.calls)
}

func TestGenerateMetadataEmptyCompletion(t *testing.T) {
	client := &fakeLLM{reply: ""}
	p := &models.ParamMetadata{Intention: "意图", Content: strings.Repeat("内容", 30)}
	_, err := generateMetadataWith(context.Background(), client, p, testCategories())
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestBuildCategoryList(t *testing.T) {
	list := buildCategoryList(testCategories())
	assert.Contains(t, list, "【内容创作】(id: content-creation)")
	assert.Contains(t, list, "- 代码生成 (id: code-generation)")
	assert.Contains(t, list, "描述: 代码生成、调试排错等开发场景")
}

func TestTargetModelHint(t *testing.T) {
	assert.Contains(t, targetModelHint("claude"), "Claude")
	assert.Contains(t, targetModelHint("general"), "通用")
	assert.Contains(t, languageHint("en"), "English")
	assert.Contains(t, languageHint("zh"), "中文")
}
