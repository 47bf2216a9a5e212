// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

/*
Package supervisor runs the long-lived parts of the Pathwise server under
a suture v4 supervisor tree.

# Layout

	RootSupervisor ("pathwise")
	├── DataSupervisor ("data-layer")
	│   ├── TagIndexGCService (persistent tag index only)
	│   └── CacheSweepService (course cache enabled only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events
are logged through sutureslog into the zerolog-backed slog handler from
the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewTagIndexGCService(tags, cfg.TagIndex.GCEvery))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	errCh := tree.ServeBackground(ctx)

See the services subpackage for the service wrappers.
*/
package supervisor
