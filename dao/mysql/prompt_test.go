package mysql

import (
	"testing"
	"time"

	"github.com/DuoLi1999/promptx/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db = sqlx.NewDb(mockDB, "mysql")
	t.Cleanup(func() { mockDB.Close() })
	return mock
}

var promptColumns = []string{
	"prompt_id", "title", "description", "content",
	"category_id", "category_name", "subcategory_id", "subcategory_name",
	"task_type", "target_tool", "tags", "author_id", "author_name",
	"view_count", "copy_count", "favorite_count", "rating",
	"featured", "trending", "is_ai_created", "created_at", "updated_at",
}

func promptRow(promptID int64, tags string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(promptColumns).AddRow(
		promptID, "测试标题五个字", "这是一个足够长的测试描述", "content",
		"software-development", "程序开发", "", "",
		"text", "通用", tags, int64(42), "作者",
		int64(0), int64(0), int64(0), 0.0,
		false, false, false, now, now,
	)
}

func TestGetPromptByID(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("from prompt where prompt_id").
		WithArgs(int64(7)).
		WillReturnRows(promptRow(7, "代码,审查"))

	p, err := GetPromptByID(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.PromptID)
	assert.Equal(t, []string{"代码", "审查"}, p.TagList)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPromptByIDNotExist(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("from prompt where prompt_id").
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(promptColumns))

	_, err := GetPromptByID(8)
	assert.ErrorIs(t, err, ErrorPromptNotExist)
}

func TestGetPromptByIDEmptyTags(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("from prompt where prompt_id").
		WithArgs(int64(9)).
		WillReturnRows(promptRow(9, ""))

	p, err := GetPromptByID(9)
	require.NoError(t, err)
	assert.Equal(t, []string{}, p.TagList)
}

func TestInsertPromptTx(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("insert into prompt").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("update user set prompt_count").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("update category set prompt_count").
		WithArgs("software-development").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := &models.Prompt{
		PromptID:   1,
		AuthorID:   42,
		CategoryID: "software-development",
	}
	require.NoError(t, InsertPrompt(p))
	require.NoError(t, mock.ExpectationsWereMet())
}

// 插入失败必须回滚，计数不能动
func TestInsertPromptRollback(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("insert into prompt").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := InsertPrompt(&models.Prompt{PromptID: 1, AuthorID: 42, CategoryID: "x"})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrViewCount(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec("update prompt set view_count").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, IncrViewCount(7, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePromptSkipsNilFields(t *testing.T) {
	mock := newMockDB(t)
	title := "新标题长度够了"
	mock.ExpectExec("update prompt set title").
		WithArgs(title, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, UpdatePrompt(7, &models.ParamUpdatePrompt{Title: &title}))
	require.NoError(t, mock.ExpectationsWereMet())

	// 全部为 nil 时不发 SQL
	require.NoError(t, UpdatePrompt(7, &models.ParamUpdatePrompt{}))
}
