package mysql

import (
	"github.com/DuoLi1999/promptx/models"
)

// GetCategoryList 返回全部分类（含二级分类），按 sort_order 排序
func GetCategoryList() ([]models.Category, error) {
	var categories []models.Category
	sqlStr := `select category_id, name, description, icon, color, prompt_count
	from category order by sort_order`
	if err := db.Select(&categories, sqlStr); err != nil {
		return nil, err
	}

	var subs []models.Subcategory
	sqlStr = `select subcategory_id, category_id, name from subcategory order by id`
	if err := db.Select(&subs, sqlStr); err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.Subcategory, len(categories))
	for _, s := range subs {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
	}
	for i := range categories {
		categories[i].Subcategories = byCategory[categories[i].ID]
	}
	return categories, nil
}

// GetCategoryByID 按 slug ID 查单个分类（含二级分类）
func GetCategoryByID(categoryID string) (*models.Category, error) {
	category := new(models.Category)
	sqlStr := `select category_id, name, description, icon, color, prompt_count
	from category where category_id = ?`
	if err := db.Get(category, sqlStr, categoryID); err != nil {
		return nil, err
	}
	sqlStr = `select subcategory_id, category_id, name from subcategory where category_id = ? order by id`
	if err := db.Select(&category.Subcategories, sqlStr, categoryID); err != nil {
		return nil, err
	}
	return category, nil
}
