package logic

import (
	"context"
	"time"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/dao/store"
	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/queue"
	"github.com/DuoLi1999/promptx/pkg/snowflake"

	"go.uber.org/zap"
)

// CreatePrompt 以当前用户身份创建提示词
func CreatePrompt(userID int64, p *models.ParamCreatePrompt) (*models.Prompt, error) {
	author, err := mysql.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	prompt := &models.Prompt{
		PromptID:        snowflake.GenID(),
		Title:           p.Title,
		Description:     p.Description,
		Content:         p.Content,
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		SubcategoryID:   p.SubcategoryID,
		SubcategoryName: p.SubcategoryName,
		TaskType:        p.TaskType,
		TargetTool:      p.TargetTool,
		Tags:            models.JoinTags(p.Tags),
		AuthorID:        author.UserID,
		AuthorName:      author.Name,
		IsAICreated:     p.IsAICreated,
	}
	if err := mysql.InsertPrompt(prompt); err != nil {
		return nil, err
	}
	return mysql.GetPromptByID(prompt.PromptID)
}

// GetPromptList 分页查询
func GetPromptList(p *models.ParamPromptList) (*models.PromptPage, error) {
	p.Normalize()
	prompts, total, err := mysql.GetPromptList(p)
	if err != nil {
		return nil, err
	}
	totalPages := total / p.Limit
	if total%p.Limit != 0 {
		totalPages++
	}
	return &models.PromptPage{
		List:       prompts,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetPromptDetail 查详情，登录用户额外带上是否已收藏
func GetPromptDetail(promptID int64, userID int64) (*models.Prompt, error) {
	prompt, err := mysql.GetPromptByID(promptID)
	if err != nil {
		return nil, err
	}
	if userID > 0 {
		favorited, err := mysql.CheckFavoriteExist(userID, promptID)
		if err != nil {
			return nil, err
		}
		prompt.IsFavorited = favorited
	}
	return prompt, nil
}

// GetUserPrompts 查当前用户发布的提示词
func GetUserPrompts(userID int64) ([]*models.Prompt, error) {
	return mysql.GetPromptsByAuthor(userID)
}

// UpdatePrompt 只有作者本人可以更新
func UpdatePrompt(userID, promptID int64, p *models.ParamUpdatePrompt) (*models.Prompt, error) {
	prompt, err := mysql.GetPromptByID(promptID)
	if err != nil {
		return nil, err
	}
	if prompt.AuthorID != userID {
		return nil, mysql.ErrorNoPermission
	}
	if err := mysql.UpdatePrompt(promptID, p); err != nil {
		return nil, err
	}
	return mysql.GetPromptByID(promptID)
}

// DeletePrompt 只有作者本人可以删除，热度榜条目一并清掉
func DeletePrompt(ctx context.Context, userID, promptID int64) error {
	prompt, err := mysql.GetPromptByID(promptID)
	if err != nil {
		return err
	}
	if prompt.AuthorID != userID {
		return mysql.ErrorNoPermission
	}
	if err := mysql.DeletePrompt(prompt); err != nil {
		return err
	}
	if err := store.RemoveHotPrompt(ctx, promptID); err != nil {
		zap.L().Warn("remove hot prompt failed", zap.Int64("prompt_id", promptID), zap.Error(err))
	}
	return nil
}

// GetHotPrompts 热度榜，ID 来自 Redis，详情回表，榜单顺序保留
func GetHotPrompts(ctx context.Context, n int64) ([]*models.Prompt, error) {
	ids, err := store.HotPromptIDs(ctx, n)
	if err != nil {
		return nil, err
	}
	prompts, err := mysql.GetPromptsByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Prompt, len(prompts))
	for _, p := range prompts {
		byID[p.PromptID] = p
	}
	ordered := make([]*models.Prompt, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// RecordView 浏览计数走消息队列异步聚合
func RecordView(promptID int64) error {
	return recordStat(queue.EventView, promptID)
}

// RecordCopy 复制计数走消息队列异步聚合
func RecordCopy(promptID int64) error {
	return recordStat(queue.EventCopy, promptID)
}

func recordStat(eventType string, promptID int64) error {
	if _, err := mysql.GetPromptByID(promptID); err != nil {
		return err
	}
	mq := queue.GetRabbitMQ()
	if mq == nil {
		// 队列没起来时直接落库，计数不能丢
		return applyStatNow(eventType, promptID)
	}
	return mq.Publish(&queue.StatEvent{
		Type:       eventType,
		PromptID:   promptID,
		OccurredAt: time.Now().Unix(),
	})
}

func applyStatNow(eventType string, promptID int64) error {
	if eventType == queue.EventCopy {
		return mysql.IncrCopyCount(promptID, 1)
	}
	return mysql.IncrViewCount(promptID, 1)
}
