package controller

import (
	"database/sql"
	"errors"

	"github.com/DuoLi1999/promptx/dao/mysql"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryListHandler 分类列表（含二级分类）
func CategoryListHandler(c *gin.Context) {
	categories, err := mysql.GetCategoryList()
	if err != nil {
		zap.L().Error("mysql.GetCategoryList failed", zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, categories)
}

// CategoryDetailHandler 按 slug 查单个分类
func CategoryDetailHandler(c *gin.Context) {
	categoryID := c.Param("id")
	category, err := mysql.GetCategoryByID(categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ResponseError(c, CodeNotFound)
			return
		}
		zap.L().Error("mysql.GetCategoryByID failed", zap.String("category_id", categoryID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, category)
}
