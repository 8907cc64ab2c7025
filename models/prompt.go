package models

import (
	"strings"
	"time"
)

// Prompt 提示词主体。tags 在库里用逗号拼接存 varchar，
// 读出后通过 FillTags 还原成数组再返回给前端。
type Prompt struct {
	PromptID        int64     `db:"prompt_id" json:"id,string"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Content         string    `db:"content" json:"content"`
	CategoryID      string    `db:"category_id" json:"categoryId"`
	CategoryName    string    `db:"category_name" json:"categoryName"`
	SubcategoryID   string    `db:"subcategory_id" json:"subcategoryId,omitempty"`
	SubcategoryName string    `db:"subcategory_name" json:"subcategoryName,omitempty"`
	TaskType        string    `db:"task_type" json:"taskType"`
	TargetTool      string    `db:"target_tool" json:"targetTool"`
	Tags            string    `db:"tags" json:"-"`
	TagList         []string  `db:"-" json:"tags"`
	AuthorID        int64     `db:"author_id" json:"authorId,string"`
	AuthorName      string    `db:"author_name" json:"authorName"`
	ViewCount       int64     `db:"view_count" json:"viewCount"`
	CopyCount       int64     `db:"copy_count" json:"copyCount"`
	FavoriteCount   int64     `db:"favorite_count" json:"favoriteCount"`
	Rating          float64   `db:"rating" json:"rating"`
	Featured        bool      `db:"featured" json:"featured"`
	Trending        bool      `db:"trending" json:"trending"`
	IsAICreated     bool      `db:"is_ai_created" json:"isAICreated"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`

	// 详情接口附带的个性化字段
	IsFavorited bool `db:"-" json:"isFavorited"`
}

// FillTags 把逗号拼接的 tags 列切成数组
func (p *Prompt) FillTags() {
	if p.Tags == "" {
		p.TagList = []string{}
		return
	}
	p.TagList = strings.Split(p.Tags, ",")
}

// JoinTags 数组写库前的反向转换
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// PromptPage 列表接口的分页返回体
type PromptPage struct {
	List       []*Prompt `json:"list"`
	Total      int64     `json:"total"`
	Page       int64     `json:"page"`
	Limit      int64     `json:"limit"`
	TotalPages int64     `json:"totalPages"`
}

// PromptMetadata AI 元数据提取的结果
type PromptMetadata struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CategoryID      string   `json:"categoryId"`
	CategoryName    string   `json:"categoryName"`
	SubcategoryID   string   `json:"subcategoryId,omitempty"`
	SubcategoryName string   `json:"subcategoryName,omitempty"`
	TaskType        string   `json:"taskType"`
	TargetTool      string   `json:"targetTool"`
	Tags            []string `json:"tags"`
}
