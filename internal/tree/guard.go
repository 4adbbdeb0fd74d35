package tree

import (
	"strings"

	"github.com/oziev02/threadtree/internal/domain"
)

// CanModify разрешает изменение и удаление узла только его автору
func CanModify(node domain.Comment, identity string) bool {
	return node.Author == identity
}

// ValidateContent отклоняет содержимое, пустое после обрезки пробелов
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.ErrEmptyContent
	}
	return nil
}

// NewComment создаёт узел с нулевыми счётчиками и пустым списком ответов
func NewComment(id int64, author, content string) domain.Comment {
	return domain.Comment{
		ID:      id,
		Author:  author,
		Content: content,
		Replies: []domain.Comment{},
	}
}
