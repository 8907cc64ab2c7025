package models

// 请求参数结构，校验规则交给 validator 的 binding tag

// ParamSignUp 注册
type ParamSignUp struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Name     string `json:"name" binding:"required,min=2,max=50"`
}

// ParamLogin 登录
type ParamLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ParamUpdateProfile 更新个人资料，零值字段不更新
type ParamUpdateProfile struct {
	Name   string `json:"name" binding:"omitempty,min=2,max=50"`
	Avatar string `json:"avatar" binding:"omitempty,max=500"`
	Bio    string `json:"bio" binding:"omitempty,max=200"`
}

// ParamCreatePrompt 创建提示词
type ParamCreatePrompt struct {
	Title           string   `json:"title" binding:"required,min=5,max=100"`
	Description     string   `json:"description" binding:"required,min=10,max=500"`
	Content         string   `json:"content" binding:"required,min=50,max=10000"`
	CategoryID      string   `json:"categoryId" binding:"required"`
	CategoryName    string   `json:"categoryName" binding:"required"`
	SubcategoryID   string   `json:"subcategoryId"`
	SubcategoryName string   `json:"subcategoryName"`
	TaskType        string   `json:"taskType" binding:"required,oneof=text image"`
	TargetTool      string   `json:"targetTool" binding:"required"`
	Tags            []string `json:"tags" binding:"required,min=1,max=10,dive,required"`
	IsAICreated     bool     `json:"isAICreated"`
}

// ParamUpdatePrompt 更新提示词，全部可选
type ParamUpdatePrompt struct {
	Title       *string   `json:"title" binding:"omitempty,min=5,max=100"`
	Description *string   `json:"description" binding:"omitempty,min=10,max=500"`
	Content     *string   `json:"content" binding:"omitempty,min=50,max=10000"`
	Tags        *[]string `json:"tags" binding:"omitempty,min=1,max=10,dive,required"`
}

// ParamPromptList 列表查询
type ParamPromptList struct {
	Page        int64  `form:"page" binding:"omitempty,min=1"`
	Limit       int64  `form:"limit" binding:"omitempty,min=1,max=50"`
	Search      string `form:"search"`
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
	TaskType    string `form:"taskType" binding:"omitempty,oneof=text image"`
	TargetTool  string `form:"targetTool"`
	Sort        string `form:"sort" binding:"omitempty,oneof=newest popular rating"`
	Featured    bool   `form:"featured"`
	Trending    bool   `form:"trending"`
}

// Normalize 补默认值
func (p *ParamPromptList) Normalize() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 20
	}
	if p.Sort == "" {
		p.Sort = "newest"
	}
}

// ParamOptimize 提示词优化（流式）
type ParamOptimize struct {
	Intention   string `json:"intention" binding:"required,min=10,max=2000"`
	TargetModel string `json:"targetModel" binding:"omitempty,oneof=chatgpt claude deepseek general"`
	Language    string `json:"language" binding:"omitempty,oneof=zh en"`
}

// ApplyDefaults 未指定时按通用模型、中文处理
func (p *ParamOptimize) ApplyDefaults() {
	if p.TargetModel == "" {
		p.TargetModel = "general"
	}
	if p.Language == "" {
		p.Language = "zh"
	}
}

// ParamMetadata 元数据提取
type ParamMetadata struct {
	Intention   string `json:"intention" binding:"required,max=2000"`
	Content     string `json:"content" binding:"required,min=50"`
	TargetModel string `json:"targetModel" binding:"omitempty,oneof=chatgpt claude deepseek general"`
	Language    string `json:"language" binding:"omitempty,oneof=zh en"`
}
