package domain

// AuthContext 鉴权中间件解析出的身份；显式传给 service，service 不再校验 token
type AuthContext struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (a AuthContext) IsAdmin() bool { return a.Role == RoleAdmin }
