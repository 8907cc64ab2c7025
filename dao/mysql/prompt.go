package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/DuoLi1999/promptx/models"

	"github.com/jmoiron/sqlx"
)

const promptFields = `prompt_id, title, description, content,
category_id, category_name, subcategory_id, subcategory_name,
task_type, target_tool, tags, author_id, author_name,
view_count, copy_count, favorite_count, rating,
featured, trending, is_ai_created, created_at, updated_at`

// InsertPrompt 写入提示词，并在同一事务里维护作者和分类的计数
func InsertPrompt(p *models.Prompt) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if pa := recover(); pa != nil {
			tx.Rollback()
			panic(pa)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	sqlStr := `insert into prompt(
	prompt_id, title, description, content,
	category_id, category_name, subcategory_id, subcategory_name,
	task_type, target_tool, tags, author_id, author_name, is_ai_created)
	values(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	if _, err = tx.Exec(sqlStr,
		p.PromptID, p.Title, p.Description, p.Content,
		p.CategoryID, p.CategoryName, p.SubcategoryID, p.SubcategoryName,
		p.TaskType, p.TargetTool, p.Tags, p.AuthorID, p.AuthorName, p.IsAICreated,
	); err != nil {
		return err
	}
	if _, err = tx.Exec(`update user set prompt_count = prompt_count + 1 where user_id = ?`, p.AuthorID); err != nil {
		return err
	}
	_, err = tx.Exec(`update category set prompt_count = prompt_count + 1 where category_id = ?`, p.CategoryID)
	return err
}

// GetPromptByID 查询单条提示词
func GetPromptByID(promptID int64) (*models.Prompt, error) {
	p := new(models.Prompt)
	sqlStr := `select ` + promptFields + ` from prompt where prompt_id = ?`
	if err := db.Get(p, sqlStr, promptID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrorPromptNotExist
		}
		return nil, err
	}
	p.FillTags()
	return p, nil
}

// GetPromptList 按过滤条件分页查询，where 子句动态拼接，参数全部占位防注入
func GetPromptList(params *models.ParamPromptList) ([]*models.Prompt, int64, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if params.Category != "" {
		where = append(where, "category_id = ?")
		args = append(args, params.Category)
	}
	if params.Subcategory != "" {
		where = append(where, "subcategory_id = ?")
		args = append(args, params.Subcategory)
	}
	if params.TaskType != "" {
		where = append(where, "task_type = ?")
		args = append(args, params.TaskType)
	}
	if params.TargetTool != "" {
		where = append(where, "target_tool = ?")
		args = append(args, params.TargetTool)
	}
	if params.Featured {
		where = append(where, "featured = 1")
	}
	if params.Trending {
		where = append(where, "trending = 1")
	}
	if params.Search != "" {
		where = append(where, "(title like ? or description like ? or tags like ?)")
		kw := "%" + params.Search + "%"
		args = append(args, kw, kw, kw)
	}
	whereClause := strings.Join(where, " and ")

	var total int64
	countSQL := `select count(*) from prompt where ` + whereClause
	if err := db.Get(&total, countSQL, args...); err != nil {
		return nil, 0, err
	}

	var orderBy string
	switch params.Sort {
	case "popular":
		orderBy = "view_count desc"
	case "rating":
		orderBy = "rating desc"
	default:
		orderBy = "created_at desc"
	}

	listSQL := fmt.Sprintf(`select %s from prompt where %s order by %s limit ? offset ?`,
		promptFields, whereClause, orderBy)
	args = append(args, params.Limit, (params.Page-1)*params.Limit)

	prompts := make([]*models.Prompt, 0, params.Limit)
	if err := db.Select(&prompts, listSQL, args...); err != nil {
		return nil, 0, err
	}
	for _, p := range prompts {
		p.FillTags()
	}
	return prompts, total, nil
}

// GetPromptsByAuthor 查某个用户发布的全部提示词
func GetPromptsByAuthor(authorID int64) ([]*models.Prompt, error) {
	prompts := make([]*models.Prompt, 0)
	sqlStr := `select ` + promptFields + ` from prompt where author_id = ? order by created_at desc`
	if err := db.Select(&prompts, sqlStr, authorID); err != nil {
		return nil, err
	}
	for _, p := range prompts {
		p.FillTags()
	}
	return prompts, nil
}

// GetPromptsByIDs 按 ID 集合批量查询，顺序由调用方自行还原
func GetPromptsByIDs(ids []int64) ([]*models.Prompt, error) {
	if len(ids) == 0 {
		return []*models.Prompt{}, nil
	}
	query, args, err := sqlx.In(`select `+promptFields+` from prompt where prompt_id in (?)`, ids)
	if err != nil {
		return nil, err
	}
	prompts := make([]*models.Prompt, 0, len(ids))
	if err := db.Select(&prompts, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, p := range prompts {
		p.FillTags()
	}
	return prompts, nil
}

// UpdatePrompt 作者更新自己的提示词，nil 字段跳过
func UpdatePrompt(promptID int64, p *models.ParamUpdatePrompt) error {
	set := []string{}
	args := []interface{}{}
	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Content != nil {
		set = append(set, "content = ?")
		args = append(args, *p.Content)
	}
	if p.Tags != nil {
		set = append(set, "tags = ?")
		args = append(args, models.JoinTags(*p.Tags))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, promptID)
	sqlStr := `update prompt set ` + strings.Join(set, ", ") + ` where prompt_id = ?`
	_, err := db.Exec(sqlStr, args...)
	return err
}

// DeletePrompt 删除提示词并回退作者、分类计数，同一事务完成
func DeletePrompt(p *models.Prompt) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if pa := recover(); pa != nil {
			tx.Rollback()
			panic(pa)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	ret, err := tx.Exec(`delete from prompt where prompt_id = ?`, p.PromptID)
	if err != nil {
		return err
	}
	n, err := ret.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrorPromptNotExist
	}
	if _, err = tx.Exec(`update user set prompt_count = prompt_count - 1 where user_id = ? and prompt_count > 0`, p.AuthorID); err != nil {
		return err
	}
	if _, err = tx.Exec(`update category set prompt_count = prompt_count - 1 where category_id = ? and prompt_count > 0`, p.CategoryID); err != nil {
		return err
	}
	_, err = tx.Exec(`delete from favorite where prompt_id = ?`, p.PromptID)
	return err
}

// IncrViewCount worker 聚合浏览事件后调用
func IncrViewCount(promptID int64, delta int64) error {
	_, err := db.Exec(`update prompt set view_count = view_count + ? where prompt_id = ?`, delta, promptID)
	return err
}

// IncrCopyCount worker 聚合复制事件后调用
func IncrCopyCount(promptID int64, delta int64) error {
	_, err := db.Exec(`update prompt set copy_count = copy_count + ? where prompt_id = ?`, delta, promptID)
	return err
}
