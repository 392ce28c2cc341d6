// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は POST /api/users/ のリクエストボディです。
type RegisterReq struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,max=128"`
}

// SetPasswordReq は POST /api/users/set_password/ のリクエストボディです。
type SetPasswordReq struct {
	NewPassword     string `json:"new_password" binding:"required,max=128"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// AvatarReq は PUT /api/users/me/avatar/ のリクエストボディです。
// Avatar は data:image/<ext>;base64,<payload> 形式です。
type AvatarReq struct {
	Avatar string `json:"avatar" binding:"required"`
}
