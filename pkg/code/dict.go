package code

// Success codes // 成功码
var (
	Success               = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate         = NewSuss(1, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessUpdate         = NewSuss(2, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete         = NewSuss(3, lang{en: "Deleted successfully", zh_cn: "删除成功"})
	SuccessPasswordUpdate = NewSuss(4, lang{en: "Password updated successfully", zh_cn: "密码修改成功"})
	SuccessJobSubmit      = NewSuss(5, lang{en: "Job submitted", zh_cn: "任务已提交"})
	SuccessJobCancel      = NewSuss(6, lang{en: "Job canceled", zh_cn: "任务已取消"})
)

// Generic errors // 通用错误
var (
	Failed                = NewError(1000, lang{en: "Failed", zh_cn: "失败"})
	ErrorServerInternal   = NewError(10000000, lang{en: "Server internal error", zh_cn: "服务内部错误"})
	ErrorInvalidParams    = NewError(10000001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFoundAPI      = NewError(10000002, lang{en: "API not found", zh_cn: "找不到对应接口"})
	ErrorTooManyRequests  = NewError(10000003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout   = NewError(10000004, lang{en: "Request timeout", zh_cn: "请求超时"})
	ErrorDBQuery          = NewError(10000005, lang{en: "Database query error", zh_cn: "数据库查询错误"})
	ErrorConfigSaveFailed = NewError(10000006, lang{en: "Failed to save configuration", zh_cn: "配置保存失败"})
)

// Auth errors // 认证错误
var (
	ErrorNotUserAuthToken     = NewError(10010001, lang{en: "Auth token is missing", zh_cn: "缺少用户认证 Token"})
	ErrorInvalidUserAuthToken = NewError(10010002, lang{en: "Auth token is invalid or expired", zh_cn: "用户认证 Token 无效或已过期"})
	ErrorTokenGenerate        = NewError(10010003, lang{en: "Failed to generate auth token", zh_cn: "Token 生成失败"})
)

// User errors // 用户错误
var (
	ErrorUserNotFound            = NewError(10020001, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserAlreadyExists       = NewError(10020002, lang{en: "User already exists", zh_cn: "用户已存在"})
	ErrorUserEmailAlreadyExists  = NewError(10020003, lang{en: "Email is already registered", zh_cn: "邮箱已被注册"})
	ErrorUserRegister            = NewError(10020004, lang{en: "Registration failed", zh_cn: "注册失败"})
	ErrorUserRegisterIsDisable   = NewError(10020005, lang{en: "Registration is disabled", zh_cn: "注册功能已关闭"})
	ErrorUserLoginFailed         = NewError(10020006, lang{en: "Login failed", zh_cn: "登录失败"})
	ErrorUserLoginPasswordFailed = NewError(10020007, lang{en: "Email or password is incorrect", zh_cn: "邮箱或密码错误"})
	ErrorUserOldPasswordFailed   = NewError(10020008, lang{en: "Old password is incorrect", zh_cn: "旧密码错误"})
	ErrorPasswordNotValid        = NewError(10020009, lang{en: "Password does not meet the requirements", zh_cn: "密码不符合要求"})
	ErrorUserUsernameNotValid    = NewError(10020010, lang{en: "Username format is invalid", zh_cn: "用户名格式不合法"})
	ErrorUserPasswordNotMatch    = NewError(10020011, lang{en: "The two passwords do not match", zh_cn: "两次输入的密码不一致"})
	ErrorUserIsNotAdmin          = NewError(10020012, lang{en: "Administrator privileges required", zh_cn: "需要管理员权限"})
)

// Tool errors // 工具错误
var (
	ErrorNotFoundTool       = NewError(10030001, lang{en: "Tool not found", zh_cn: "工具不存在"})
	ErrorToolExecuteFailed  = NewError(10030002, lang{en: "Tool execution failed", zh_cn: "工具执行失败"})
	ErrorHistoryNotFound    = NewError(10030003, lang{en: "History entry not found", zh_cn: "历史记录不存在"})
	ErrorFavoriteExists     = NewError(10030004, lang{en: "Tool is already in favorites", zh_cn: "工具已在收藏中"})
	ErrorSettingKeyNotValid = NewError(10030005, lang{en: "Setting key or value is not valid", zh_cn: "设置键或值不合法"})
	ErrorSettingNotFound    = NewError(10030006, lang{en: "Setting not found", zh_cn: "设置不存在"})
)

// File and upload errors // 文件与上传错误
var (
	ErrorUploadFileFailed   = NewError(10040001, lang{en: "File upload failed", zh_cn: "文件上传失败"})
	ErrorUploadTooLarge     = NewError(10040002, lang{en: "Uploaded file is too large", zh_cn: "上传文件过大"})
	ErrorFileNotFound       = NewError(10040003, lang{en: "File not found", zh_cn: "文件不存在"})
	ErrorFileReadFailed     = NewError(10040004, lang{en: "Failed to read file", zh_cn: "文件读取失败"})
	ErrorInvalidStorageType = NewError(10040005, lang{en: "Invalid storage type", zh_cn: "存储类型无效"})
	ErrorStorageNotFound    = NewError(10040006, lang{en: "Storage is not configured", zh_cn: "存储未配置"})
	ErrorExportFailed       = NewError(10040007, lang{en: "Export failed", zh_cn: "导出失败"})
)

// Job errors // 任务错误
var (
	ErrorJobNotFound      = NewError(10050001, lang{en: "Job not found", zh_cn: "任务不存在"})
	ErrorJobNotCancelable = NewError(10050002, lang{en: "Job is already finished", zh_cn: "任务已结束，无法取消"})
	ErrorJobSubmitFailed  = NewError(10050003, lang{en: "Failed to submit job", zh_cn: "任务提交失败"})
)
