package adapters

import (
	"time"

	"gorm.io/gorm"

	"foodgram_backend/internal/feature/auth/domain/entity"
	userentity "foodgram_backend/internal/feature/users/domain/entity"
)

// SessionModel は Redis を使わない構成でトークンセッションを保存する sessions テーブルの行です。
// ID はログイン時に発行した UUID で、トークンの jti クレームと一致します。
// ユーザーを削除するとそのセッションも削除され、発行済みトークンは即座に無効になります。
type SessionModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	UserID    uint            `gorm:"index;not null"`
	User      userentity.User `gorm:"constraint:OnDelete:CASCADE"`
	UserAgent string          `gorm:"size:512"`
	IPAddress string          `gorm:"size:45"` // IPv6 max length
	CreatedAt time.Time       `gorm:"not null"`
	// ExpiresAt はトークンの exp と同じ時刻です。manage purge-sessions が期限切れ行を削除します。
	ExpiresAt time.Time  `gorm:"index;not null"`
	RevokedAt *time.Time `gorm:"index"` // ログアウト・パスワード変更時に設定
}

func (SessionModel) TableName() string {
	return "sessions"
}

// activeSessionsOf は userID の失効も期限切れもしていないセッションに絞り込みます。
// ユーザーごとのセッション上限の判定に使います。
func activeSessionsOf(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now())
	}
}

// ToEntity は行をセッションエンティティに変換します。
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
	}
}

// SessionModelFromEntity はログイン時に開いたセッションを保存用の行に変換します。
func SessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}
