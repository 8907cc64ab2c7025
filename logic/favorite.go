package logic

import (
	"time"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/sse"
)

// GetFavorites 查当前用户的收藏列表
func GetFavorites(userID int64) ([]*models.Prompt, error) {
	return mysql.GetFavoritePrompts(userID)
}

// AddFavorite 收藏提示词，成功后给作者推一条通知
func AddFavorite(userID, promptID int64) error {
	prompt, err := mysql.GetPromptByID(promptID)
	if err != nil {
		return err
	}
	exist, err := mysql.CheckFavoriteExist(userID, promptID)
	if err != nil {
		return err
	}
	if exist {
		return mysql.ErrorFavoriteExist
	}
	if err := mysql.AddFavorite(userID, promptID); err != nil {
		return err
	}

	// 自己收藏自己的不用通知
	if hub := sse.GetHub(); hub != nil && prompt.AuthorID != userID {
		fromName := ""
		if from, err := mysql.GetUserByID(userID); err == nil {
			fromName = from.Name
		}
		hub.NotifyUser(prompt.AuthorID, &sse.Notification{
			Type:         "favorite",
			PromptID:     prompt.PromptID,
			PromptTitle:  prompt.Title,
			FromUserName: fromName,
			CreatedAt:    time.Now().Unix(),
		})
	}
	return nil
}

// RemoveFavorite 取消收藏
func RemoveFavorite(userID, promptID int64) error {
	if _, err := mysql.GetPromptByID(promptID); err != nil {
		return err
	}
	return mysql.RemoveFavorite(userID, promptID)
}
