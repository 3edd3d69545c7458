package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/rv/internal/adapters/config"
	"go.trai.ch/rv/internal/adapters/fetch"
	"go.trai.ch/rv/internal/adapters/installer"
	"go.trai.ch/rv/internal/adapters/library"
	"go.trai.ch/rv/internal/adapters/lockfile"
	"go.trai.ch/rv/internal/adapters/repodb"
	"go.trai.ch/rv/internal/adapters/telemetry"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/rv/internal/engine/planner"
	syncengine "go.trai.ch/rv/internal/engine/sync"

	"go.trai.ch/rv/internal/adapters/logger"
	"go.trai.ch/rv/internal/engine/resolver"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			repodb.NodeID,
			resolver.NodeID,
			lockfile.NodeID,
			planner.NodeID,
			syncengine.NodeID,
			installer.NodeID,
			library.NodeID,
			library.OpenFileCheckerNodeID,
			fetch.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			repositoryDB, err := graft.Dep[ports.RepositoryDatabase](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			lockfileStore, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}
			plan, err := graft.Dep[ports.Planner](ctx)
			if err != nil {
				return nil, err
			}
			sync, err := graft.Dep[ports.SyncEngine](ctx)
			if err != nil {
				return nil, err
			}
			inst, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}
			lib, err := graft.Dep[ports.Library](ctx)
			if err != nil {
				return nil, err
			}
			checker, err := graft.Dep[ports.OpenFileChecker](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				configLoader, repositoryDB, res, lockfileStore, plan, sync,
				inst, lib, checker, []ports.SourceFetcher{fetcher}, log, tracer,
			), nil
		},
	})
}
