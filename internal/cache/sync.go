package cache

import (
	"github.com/hayate-io/kintai/internal/model"
	"github.com/hayate-io/kintai/internal/normalize"
)

// Status describes how the effective dataset was resolved.
type Status int

const (
	// StatusEmpty: no data anywhere.
	StatusEmpty Status = iota
	// StatusSynced: remote reachable, local copy is current (ties favor local).
	StatusSynced
	// StatusUpdated: remote was strictly newer and replaced the local copy.
	StatusUpdated
	// StatusCommError: remote unreachable, running on local data only.
	StatusCommError
)

// String returns the operator-facing status text.
func (s Status) String() string {
	switch s {
	case StatusSynced:
		return "サーバー同期完了"
	case StatusUpdated:
		return "サーバー同期完了(最新)"
	case StatusCommError:
		return "サーバー通信エラー"
	default:
		return "データなし"
	}
}

// Resolve picks the effective dataset between the local snapshot and the
// remote fetch result. remote == nil means the fetch failed or returned
// nothing; local == nil is treated as the earliest possible timestamp.
// Remote-origin dates are re-normalized before use — the store serializes
// dates differently than the local snapshot does.
func Resolve(local, remote *model.ReferenceDataset) (model.ReferenceDataset, Status) {
	if remote == nil {
		if local == nil {
			return model.ReferenceDataset{}, StatusEmpty
		}
		return *local, StatusCommError
	}

	for i := range remote.Events {
		remote.Events[i].Date = normalize.Date(remote.Events[i].Date)
	}
	rehydrate(remote.Events)

	if local == nil || remote.Timestamp.After(local.Timestamp) {
		return *remote, StatusUpdated
	}
	return *local, StatusSynced
}
