package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oziev02/threadtree/internal/domain"
	"github.com/oziev02/threadtree/internal/tree"
)

// demoComments — демонстрационные корневые комментарии, добавляемые при старте
var demoComments = []domain.Comment{
	tree.NewComment(1, "a", "First comment"),
	tree.NewComment(2, "b", "Second comment!"),
}

// CommentUseCase владеет текущим лесом и координирует изменения:
// проверяет запрос, делегирует обход пакету tree и сохраняет результат
type CommentUseCase struct {
	mu     sync.Mutex
	forest domain.Forest

	repo   domain.ForestRepository
	logger *slog.Logger
	ids    *tree.IDGenerator

	seed         bool
	saveTimeout  time.Duration
	saveFailures atomic.Int64
}

// Option настраивает CommentUseCase
type Option func(*CommentUseCase)

// WithoutSeed отключает добавление демонстрационных комментариев
func WithoutSeed() Option {
	return func(uc *CommentUseCase) { uc.seed = false }
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(g *tree.IDGenerator) Option {
	return func(uc *CommentUseCase) { uc.ids = g }
}

// WithSaveTimeout ограничивает время одной записи в хранилище
func WithSaveTimeout(d time.Duration) Option {
	return func(uc *CommentUseCase) { uc.saveTimeout = d }
}

// NewCommentUseCase создает новый экземпляр CommentUseCase с пустым лесом
func NewCommentUseCase(repo domain.ForestRepository, logger *slog.Logger, opts ...Option) *CommentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	uc := &CommentUseCase{
		forest:      domain.Forest{},
		repo:        repo,
		logger:      logger,
		ids:         tree.NewIDGenerator(nil),
		seed:        true,
		saveTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Load загружает лес из хранилища и добавляет перед ним демонстрационные
// комментарии, которых в нём ещё нет
func (uc *CommentUseCase) Load(ctx context.Context) error {
	forest, found, err := uc.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	if !found {
		forest = domain.Forest{}
	}

	if uc.seed {
		forest = withDemo(forest)
	}
	if err := forest.Validate(); err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.forest = forest
	uc.ids.Observe(forest.MaxID())

	uc.logger.Info("comments loaded",
		"found", found,
		"roots", len(forest),
		"total", forest.Count(),
	)
	return nil
}

func withDemo(forest domain.Forest) domain.Forest {
	out := make(domain.Forest, 0, len(demoComments)+len(forest))
	for _, c := range demoComments {
		if _, ok := tree.Find(forest, c.ID); !ok {
			out = append(out, c.Clone())
		}
	}
	return append(out, forest...)
}

// Add создает корневой комментарий (parentID == nil) или ответ
func (uc *CommentUseCase) Add(ctx context.Context, identity string, parentID *int64, content string) (domain.Comment, error) {
	if err := tree.ValidateContent(content); err != nil {
		return domain.Comment{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if parentID != nil {
		if _, ok := tree.Find(uc.forest, *parentID); !ok {
			return domain.Comment{}, domain.ErrInvalidParent
		}
	}

	comment := tree.NewComment(uc.ids.Next(), identity, content)
	uc.commit(ctx, "add", tree.InsertReply(uc.forest, parentID, comment))

	return comment.Clone(), nil
}

// Edit заменяет содержимое комментария; разрешено только автору
func (uc *CommentUseCase) Edit(ctx context.Context, identity string, id int64, content string) (domain.Comment, error) {
	if err := tree.ValidateContent(content); err != nil {
		return domain.Comment{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.authorize(id, identity); err != nil {
		return domain.Comment{}, err
	}

	uc.commit(ctx, "edit", tree.UpdateContent(uc.forest, id, identity, content))

	updated, _ := tree.Find(uc.forest, id)
	return updated.Clone(), nil
}

// Remove удаляет комментарий вместе со всеми ответами и возвращает
// количество удалённых узлов
func (uc *CommentUseCase) Remove(ctx context.Context, identity string, id int64) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.authorize(id, identity); err != nil {
		return 0, err
	}

	before := uc.forest.Count()
	uc.commit(ctx, "remove", tree.DeleteByID(uc.forest, id, identity))

	return before - uc.forest.Count(), nil
}

// Vote учитывает голос. Личность голосующего не проверяется,
// повторные голоса не ограничиваются.
func (uc *CommentUseCase) Vote(ctx context.Context, id int64, kind domain.VoteKind) (domain.Comment, error) {
	if kind != domain.Upvote && kind != domain.Downvote {
		return domain.Comment{}, domain.ErrInvalidVote
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := tree.Find(uc.forest, id); !ok {
		return domain.Comment{}, domain.ErrCommentNotFound
	}

	uc.commit(ctx, "vote", tree.AdjustVote(uc.forest, id, kind))

	voted, _ := tree.Find(uc.forest, id)
	return voted.Clone(), nil
}

// Forest возвращает копию текущего леса для отображения
func (uc *CommentUseCase) Forest() domain.Forest {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.forest.Clone()
}

// Get возвращает комментарий вместе с ответами
func (uc *CommentUseCase) Get(id int64) (domain.Comment, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c, ok := tree.Find(uc.forest, id)
	if !ok {
		return domain.Comment{}, domain.ErrCommentNotFound
	}
	return c.Clone(), nil
}

// Search выполняет поиск по содержимому комментариев
func (uc *CommentUseCase) Search(query string) []domain.Comment {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	found := tree.Search(uc.forest, query)
	for i := range found {
		found[i] = found[i].Clone()
	}
	return found
}

// Count возвращает общее количество комментариев
func (uc *CommentUseCase) Count() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.forest.Count()
}

// SaveFailures возвращает количество неудачных записей в хранилище
func (uc *CommentUseCase) SaveFailures() int64 {
	return uc.saveFailures.Load()
}

// authorize отличает отсутствующий комментарий от чужого
func (uc *CommentUseCase) authorize(id int64, identity string) error {
	node, ok := tree.Find(uc.forest, id)
	if !ok {
		return domain.ErrCommentNotFound
	}
	if !tree.CanModify(node, identity) {
		return domain.ErrForbidden
	}
	return nil
}

// commit заменяет лес и сохраняет его. Ошибка записи только
// логируется: лес в памяти остаётся новым.
func (uc *CommentUseCase) commit(ctx context.Context, op string, forest domain.Forest) {
	uc.forest = forest

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.saveTimeout)
	defer cancel()

	if err := uc.repo.Save(saveCtx, forest); err != nil {
		uc.saveFailures.Add(1)
		uc.logger.Error("failed to persist comments",
			"op", op,
			"error", err,
		)
		return
	}

	uc.logger.Debug("comments persisted", "op", op, "total", forest.Count())
}
