// Package livereload refreshes open documentation pages when catalog files
// change on disk.
//
// Watch observes a catalog directory with fsnotify and calls back once per
// burst of edits. Hub upgrades /livereload requests to websockets and
// Notify sends every connected page a {"event":"reload"} message, which
// the page script answers with location.reload().
//
//	hub := livereload.NewHub()
//	go hub.Run(ctx)
//	go livereload.Watch(ctx, dir, func() {
//	    if err := site.Reload(); err == nil {
//	        hub.Notify()
//	    }
//	})
package livereload
