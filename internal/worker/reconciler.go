package worker

import (
	"context"

	"github.com/SkyVence/project-avims-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Reconciler re-derives stored package totals from the live edge set.
// Membership changes recompute synchronously in-transaction; this path exists
// for the one trigger that does not — an item's value being edited while the
// item is already a member — and for the periodic drift sweep.
type Reconciler struct {
	pkgRepo repository.PackageRepository
}

func NewReconciler(pkgRepo repository.PackageRepository) *Reconciler {
	return &Reconciler{pkgRepo: pkgRepo}
}

// ReconcileItem refreshes the total of every package containing the item.
func (r *Reconciler) ReconcileItem(ctx context.Context, itemID uuid.UUID) error {
	ids, err := r.pkgRepo.FindIDsByItem(ctx, itemID)
	if err != nil {
		return err
	}
	return r.ReconcilePackages(ctx, ids)
}

// ReconcilePackages recomputes and persists each package's total. A package
// deleted since the job was queued simply updates zero rows.
func (r *Reconciler) ReconcilePackages(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		total, err := r.pkgRepo.SumItemValuesTx(ctx, nil, id)
		if err != nil {
			return err
		}
		if err := r.pkgRepo.UpdateTotalTx(ctx, nil, id, total); err != nil {
			return err
		}
		log.Debug().Str("package_id", id.String()).Str("total", total.String()).Msg("package total reconciled")
	}
	return nil
}

// SweepAll reconciles every package. Run periodically as drift repair.
func (r *Reconciler) SweepAll(ctx context.Context) error {
	ids, err := r.pkgRepo.ListIDs(ctx)
	if err != nil {
		return err
	}
	return r.ReconcilePackages(ctx, ids)
}
