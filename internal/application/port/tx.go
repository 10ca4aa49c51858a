package port

import "context"

// TxRunner 在同一个数据库事务中执行fn
// fn返回error时回滚
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
