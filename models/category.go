package models

// Category 一级分类，ID 是语义化 slug（如 software-development）
type Category struct {
	ID            string        `db:"category_id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Description   string        `db:"description" json:"description"`
	Icon          string        `db:"icon" json:"icon"`
	Color         string        `db:"color" json:"color"`
	PromptCount   int64         `db:"prompt_count" json:"promptCount"`
	Subcategories []Subcategory `db:"-" json:"subcategories"`
}

// Subcategory 二级分类，挂在某个一级分类下
type Subcategory struct {
	ID         string `db:"subcategory_id" json:"id"`
	CategoryID string `db:"category_id" json:"categoryId"`
	Name       string `db:"name" json:"name"`
}
