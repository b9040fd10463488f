// internal/integration/dispatcher.go
package integration

import (
	"sync"

	"go_5_note_keep/internal/model"

	"github.com/google/uuid"
)

// Resolved はユーティリティ1件分の連携部品一式
type Resolved struct {
	Client Client
	Params ParamValidator
	Mapper FieldMapper
}

// kindProfile は種別ごとの部品の組み立て方。registry は閉じた集合で、
// 実行時に種別を追加する手段は意図的に用意しない。
type kindProfile struct {
	newParams func() ParamValidator
	newMapper func() FieldMapper
	auth      authProfile
}

var registry = map[model.UtilityKind]kindProfile{
	model.UtilityKindNorth: {
		newParams: NewNorthParamValidator,
		newMapper: NewNorthMapper,
		auth:      northAuthProfile{},
	},
	model.UtilityKindSouth: {
		newParams: NewSouthParamValidator,
		newMapper: NewSouthMapper,
		auth:      southAuthProfile{},
	},
}

// SupportedKind は種別が registry に登録済みかを返します。
// ユーティリティ作成時の事前チェックに使う。
func SupportedKind(kind model.UtilityKind) bool {
	_, ok := registry[kind]
	return ok
}

// SupportedKinds は登録済み種別の一覧を返します (エラーメッセージ用)。
func SupportedKinds() []model.UtilityKind {
	kinds := make([]model.UtilityKind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	return kinds
}

// Dispatcher はユーティリティごとの連携部品を解決しキャッシュします。
// キャッシュキーはユーティリティID。種別は作成後に変更できないため、
// 一度解決した組はプロセス生存中は使い回せる。
type Dispatcher struct {
	mu    sync.RWMutex
	cache map[uuid.UUID]Resolved
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		cache: make(map[uuid.UUID]Resolved),
	}
}

// Resolve はユーティリティに対応する部品一式を返します。
// 未対応の種別は UnsupportedKindError (外部呼び出し前に失敗させる)。
func (d *Dispatcher) Resolve(utility *model.Utility) (Resolved, error) {
	d.mu.RLock()
	if resolved, ok := d.cache[utility.UtilityID]; ok {
		d.mu.RUnlock()
		return resolved, nil
	}
	d.mu.RUnlock()

	profile, ok := registry[utility.Kind]
	if !ok {
		return Resolved{}, &model.UnsupportedKindError{Kind: string(utility.Kind)}
	}

	resolved := Resolved{
		Client: newHTTPClient(utility, profile.auth),
		Params: profile.newParams(),
		Mapper: profile.newMapper(),
	}

	d.mu.Lock()
	d.cache[utility.UtilityID] = resolved
	d.mu.Unlock()

	return resolved, nil
}

// Invalidate は認証情報更新や削除の際にキャッシュを破棄します。
func (d *Dispatcher) Invalidate(utilityID uuid.UUID) {
	d.mu.Lock()
	delete(d.cache, utilityID)
	d.mu.Unlock()
}
