package dbschema

import (
	"glow-server/internal/domain/thread"
	"glow-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Thread{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Thread represents the database schema for conversation threads.
type Thread struct {
	BaseModel
	PublicID string `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID   uint   `gorm:"index:idx_threads_user_updated_at;not null"`
	User     User   `gorm:"foreignKey:UserID"`
	Title    string `gorm:"type:varchar(256);not null"`
}

// Message represents one immutable turn inside a thread. There is no foreign
// key constraint to Thread: a deleted thread leaves its messages in place.
type Message struct {
	BaseModel
	PublicID string `gorm:"type:varchar(50);uniqueIndex;not null"`
	ThreadID uint   `gorm:"index:idx_messages_thread_created;not null"`
	UserID   uint   `gorm:"index;not null"`
	Role     string `gorm:"type:varchar(20);not null"`
	Content  string `gorm:"type:text;not null"`
}

// NewSchemaThread converts a domain thread into a schema instance.
func NewSchemaThread(t *thread.Thread) *Thread {
	if t == nil {
		return nil
	}

	return &Thread{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
		PublicID: t.PublicID,
		UserID:   t.UserID,
		Title:    t.Title,
	}
}

// EtoD converts a schema thread back to the domain representation.
func (t *Thread) EtoD() *thread.Thread {
	if t == nil {
		return nil
	}

	return &thread.Thread{
		ID:        t.ID,
		PublicID:  t.PublicID,
		UserID:    t.UserID,
		Title:     t.Title,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// NewSchemaMessage converts a domain message into a schema instance.
func NewSchemaMessage(m *thread.Message) *Message {
	if m == nil {
		return nil
	}

	return &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		PublicID: m.PublicID,
		ThreadID: m.ThreadID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		Content:  m.Content,
	}
}

// EtoD converts a schema message back to the domain representation.
func (m *Message) EtoD() *thread.Message {
	if m == nil {
		return nil
	}

	return &thread.Message{
		ID:        m.ID,
		PublicID:  m.PublicID,
		ThreadID:  m.ThreadID,
		UserID:    m.UserID,
		Role:      thread.MessageRole(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
