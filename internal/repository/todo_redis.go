package repository

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/jaekwang-park/todo-backend/internal/model"
)

const (
	redisSeqKey     = "todos:seq"
	redisIDsKey     = "todos:ids"
	redisTodoPrefix = "todo:"
)

// deleteAllScript reads the id set and drops every hash with it in one step,
// so a Save committed in between cannot leave a hash without its id.
var deleteAllScript = redis.NewScript(`
local ids = redis.call("SMEMBERS", KEYS[1])
for _, id in ipairs(ids) do
	redis.call("DEL", ARGV[1] .. id)
end
redis.call("DEL", KEYS[1])
return #ids
`)

// RedisTodoRepository keeps one hash per todo plus a set of live ids.
// Ids come from INCR on a counter that is never reset, so they are not reused.
type RedisTodoRepository struct {
	client *redis.Client
}

func NewRedisTodo(client *redis.Client) *RedisTodoRepository {
	return &RedisTodoRepository{client: client}
}

// NewRedisClient connects to the server named by a redis:// URL.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisTodoRepository) Save(ctx context.Context, todo model.Todo) (model.Todo, error) {
	id, ok := todo.ID.Get()
	if !ok {
		next, err := r.client.Incr(ctx, redisSeqKey).Result()
		if err != nil {
			return model.Todo{}, fmt.Errorf("failed to allocate todo id: %w", err)
		}
		id = next
	}

	fields := map[string]any{
		"title":     todo.Title,
		"completed": strconv.FormatBool(todo.Completed),
	}
	if order, ok := todo.Order.Get(); ok {
		fields["order"] = order
	}

	key := todoKey(id)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// Replace the whole hash so a cleared order does not survive.
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.SAdd(ctx, redisIDsKey, id)
		return nil
	})
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to save todo: %w", err)
	}

	saved := todo
	saved.ID = model.Some(id)
	return saved, nil
}

func (r *RedisTodoRepository) FindByID(ctx context.Context, id int64) (model.Todo, error) {
	fields, err := r.client.HGetAll(ctx, todoKey(id)).Result()
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}
	if len(fields) == 0 {
		return model.Todo{}, ErrNotFound
	}
	return decodeTodoHash(id, fields)
}

func (r *RedisTodoRepository) FindAll(ctx context.Context) ([]model.Todo, error) {
	ids, err := r.ids(ctx)
	if err != nil {
		return nil, err
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, todoKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos := make([]model.Todo, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		// deleted between SMEMBERS and HGETALL
		if len(fields) == 0 {
			continue
		}
		todo, err := decodeTodoHash(ids[i], fields)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

// FindByTitle scans every todo; there is no title index in Redis.
func (r *RedisTodoRepository) FindByTitle(ctx context.Context, title string) ([]model.Todo, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []model.Todo{}
	for _, todo := range all {
		if todo.Title == title {
			matched = append(matched, todo)
		}
	}
	return matched, nil
}

func (r *RedisTodoRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, todoKey(id))
		pipe.SRem(ctx, redisIDsKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (r *RedisTodoRepository) DeleteAll(ctx context.Context) error {
	if err := deleteAllScript.Run(ctx, r.client, []string{redisIDsKey}, redisTodoPrefix).Err(); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	return nil
}

// ids returns the live ids in ascending order.
func (r *RedisTodoRepository) ids(ctx context.Context) ([]int64, error) {
	members, err := r.client.SMembers(ctx, redisIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list todo ids: %w", err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid todo id %q in %s: %w", m, redisIDsKey, err)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func decodeTodoHash(id int64, fields map[string]string) (model.Todo, error) {
	todo := model.Todo{
		ID:    model.Some(id),
		Title: fields["title"],
	}
	if v, ok := fields["completed"]; ok {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return model.Todo{}, fmt.Errorf("failed to decode todo %d completed: %w", id, err)
		}
		todo.Completed = completed
	}
	if v, ok := fields["order"]; ok {
		order, err := strconv.Atoi(v)
		if err != nil {
			return model.Todo{}, fmt.Errorf("failed to decode todo %d order: %w", id, err)
		}
		todo.Order = model.Some(order)
	}
	return todo, nil
}

func todoKey(id int64) string {
	return redisTodoPrefix + strconv.FormatInt(id, 10)
}

var _ TodoRepository = (*RedisTodoRepository)(nil)
