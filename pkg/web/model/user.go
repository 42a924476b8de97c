package model

// 表单请求数据结构
type (
	RegisterReq struct {
		Name          string `form:"name"`
		Password      string `form:"password"`
		PasswordAgain string `form:"password_again"`
		Email         string `form:"email"`
	}

	VerifyReq struct {
		Code string `form:"code"`
	}

	LoginReq struct {
		Email      string `form:"email"`
		Password   string `form:"password"`
		RememberMe string `form:"remember_me"` // checkbox，勾选时为"on"
	}

	SearchReq struct {
		Searched string `form:"searched"`
	}
)

// Remember 复选框是否勾选
func (r LoginReq) Remember() bool {
	return r.RememberMe == "on" || r.RememberMe == "true" || r.RememberMe == "1"
}
