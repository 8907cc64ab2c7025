package mysql

import (
	"github.com/DuoLi1999/promptx/models"
)

// CheckFavoriteExist 查用户是否已收藏该提示词
func CheckFavoriteExist(userID, promptID int64) (bool, error) {
	var count int64
	sqlStr := `select count(*) from favorite where user_id = ? and prompt_id = ?`
	if err := db.Get(&count, sqlStr, userID, promptID); err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddFavorite 收藏，favorite_count 在同一事务里加一
func AddFavorite(userID, promptID int64) (err error) {
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

	if _, err = tx.Exec(`insert into favorite(user_id, prompt_id) values(?,?)`, userID, promptID); err != nil {
		return err
	}
	_, err = tx.Exec(`update prompt set favorite_count = favorite_count + 1 where prompt_id = ?`, promptID)
	return err
}

// RemoveFavorite 取消收藏，favorite_count 在同一事务里减一
func RemoveFavorite(userID, promptID int64) (err error) {
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

	ret, err := tx.Exec(`delete from favorite where user_id = ? and prompt_id = ?`, userID, promptID)
	if err != nil {
		return err
	}
	n, err := ret.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrorFavoriteMissing
	}
	_, err = tx.Exec(`update prompt set favorite_count = favorite_count - 1 where prompt_id = ? and favorite_count > 0`, promptID)
	return err
}

// GetFavoritePrompts 查用户收藏的提示词，按收藏时间倒序
func GetFavoritePrompts(userID int64) ([]*models.Prompt, error) {
	prompts := make([]*models.Prompt, 0)
	sqlStr := `select p.prompt_id, p.title, p.description, p.content,
	p.category_id, p.category_name, p.subcategory_id, p.subcategory_name,
	p.task_type, p.target_tool, p.tags, p.author_id, p.author_name,
	p.view_count, p.copy_count, p.favorite_count, p.rating,
	p.featured, p.trending, p.is_ai_created, p.created_at, p.updated_at
	from favorite f join prompt p on p.prompt_id = f.prompt_id
	where f.user_id = ? order by f.created_at desc`
	if err := db.Select(&prompts, sqlStr, userID); err != nil {
		return nil, err
	}
	for _, p := range prompts {
		p.FillTags()
	}
	return prompts, nil
}
