package model

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	LastLogin    int64  `json:"last_login"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}

type UserSkill struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Ctime  int64  `json:"ctime"`
}

type UserHabit struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Description string `json:"description"`
	Ctime       int64  `json:"ctime"`
}
