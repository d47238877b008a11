package loaders

import (
	"github.com/graph-gophers/dataloader/v7"
)

// oneByKey 取得した行をキーの順に並べ直す。存在しないキーはnil（エラーではない）
func oneByKey[K comparable, V any](keys []K, rows []V, keyOf func(V) K) []*dataloader.Result[*V] {
	index := make(map[K]*V, len(rows))
	for i := range rows {
		index[keyOf(rows[i])] = &rows[i]
	}

	results := make([]*dataloader.Result[*V], len(keys))
	for i, key := range keys {
		results[i] = &dataloader.Result[*V]{Data: index[key]}
	}
	return results
}

// manyByKey 取得した行をキーごとにまとめ、キーの順に並べ直す。該当なしは空スライス
func manyByKey[K comparable, V any](keys []K, rows []V, keyOf func(V) K) []*dataloader.Result[[]V] {
	grouped := make(map[K][]V, len(keys))
	for _, row := range rows {
		k := keyOf(row)
		grouped[k] = append(grouped[k], row)
	}

	results := make([]*dataloader.Result[[]V], len(keys))
	for i, key := range keys {
		values := grouped[key]
		if values == nil {
			values = []V{}
		}
		results[i] = &dataloader.Result[[]V]{Data: values}
	}
	return results
}

// failAll バッチの取得に失敗したら待っている全員に同じエラーを返す
func failAll[K comparable, V any](keys []K, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i := range keys {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}
