package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsbuild/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsbuild/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsbuild/internal/adapters/report" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsbuild/internal/adapters/stager" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/engine/planner"
	"go.trai.ch/tsbuild/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			planner.NodeID,
			scheduler.NodeID,
			stager.NodeID,
			report.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			plan, err := graft.Dep[*planner.Planner](ctx)
			if err != nil {
				return nil, err
			}

			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}

			stg, err := graft.Dep[ports.Stager](ctx)
			if err != nil {
				return nil, err
			}

			reports, err := graft.Dep[ports.ReportStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, plan, sched, stg, reports, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}
