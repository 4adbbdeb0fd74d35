// Package tree реализует чистые рекурсивные операции над лесом комментариев.
//
// Ни одна функция не изменяет входной лес: путь от корня до изменённого узла
// перестраивается заново, нетронутые поддеревья разделяются с исходным лесом.
// Поиск цели идёт в прямом порядке (родитель раньше детей, братья слева
// направо); при дублировании идентификаторов затрагивается только первый
// найденный узел.
package tree

import (
	"github.com/oziev02/threadtree/internal/domain"
)

// visitFunc решает судьбу найденного узла: возвращает замену,
// признак удаления и признак того, что лес изменился
type visitFunc func(node domain.Comment) (replacement domain.Comment, remove bool, changed bool)

// InsertReply добавляет c в конец корневой последовательности при
// parentID == nil, иначе в конец ответов узла с идентификатором *parentID.
// Если родитель не найден, лес возвращается без изменений.
func InsertReply(forest domain.Forest, parentID *int64, c domain.Comment) domain.Forest {
	if parentID == nil {
		return appendComment(forest, c)
	}

	out, _ := rewrite(forest, *parentID, func(node domain.Comment) (domain.Comment, bool, bool) {
		node.Replies = appendComment(node.Replies, c)
		return node, false, true
	})
	return out
}

// UpdateContent заменяет содержимое узла id, если author его автор
func UpdateContent(forest domain.Forest, id int64, author, content string) domain.Forest {
	out, _ := rewrite(forest, id, func(node domain.Comment) (domain.Comment, bool, bool) {
		if !CanModify(node, author) {
			return node, false, false
		}
		node.Content = content
		return node, false, true
	})
	return out
}

// DeleteByID удаляет узел id вместе со всем поддеревом ответов,
// если author его автор. Дети удалённого узла не поднимаются выше.
func DeleteByID(forest domain.Forest, id int64, author string) domain.Forest {
	out, _ := rewrite(forest, id, func(node domain.Comment) (domain.Comment, bool, bool) {
		if !CanModify(node, author) {
			return node, false, false
		}
		return node, true, true
	})
	return out
}

// AdjustVote увеличивает на единицу счётчик голосов узла id.
// Авторизация не проверяется.
func AdjustVote(forest domain.Forest, id int64, kind domain.VoteKind) domain.Forest {
	out, _ := rewrite(forest, id, func(node domain.Comment) (domain.Comment, bool, bool) {
		switch kind {
		case domain.Upvote:
			node.Upvotes++
		case domain.Downvote:
			node.Downvotes++
		default:
			return node, false, false
		}
		return node, false, true
	})
	return out
}

// rewrite находит первый узел с идентификатором id и применяет к нему fn.
// matched сообщает, что узел найден, даже если fn ничего не изменила:
// дальнейшие дубликаты не рассматриваются.
func rewrite(forest domain.Forest, id int64, fn visitFunc) (out domain.Forest, matched bool) {
	for i, node := range forest {
		if node.ID == id {
			replacement, remove, changed := fn(node)
			switch {
			case !changed:
				return forest, true
			case remove:
				return removeAt(forest, i), true
			default:
				return replaceAt(forest, i, replacement), true
			}
		}

		replies, ok := rewrite(node.Replies, id, fn)
		if !ok {
			continue
		}
		if sameSlice(replies, node.Replies) {
			return forest, true
		}
		node.Replies = replies
		return replaceAt(forest, i, node), true
	}
	return forest, false
}

func appendComment(list []domain.Comment, c domain.Comment) []domain.Comment {
	if c.Replies == nil {
		c.Replies = []domain.Comment{}
	}
	out := make([]domain.Comment, len(list), len(list)+1)
	copy(out, list)
	return append(out, c)
}

func replaceAt(list []domain.Comment, i int, c domain.Comment) []domain.Comment {
	out := make([]domain.Comment, len(list))
	copy(out, list)
	out[i] = c
	return out
}

func removeAt(list []domain.Comment, i int) []domain.Comment {
	out := make([]domain.Comment, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// sameSlice сообщает, что rewrite вернула исходный срез ответов
func sameSlice(a, b []domain.Comment) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
