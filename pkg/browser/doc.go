// Package browser drives a Playwright browser to collect page details from a
// live page and replay fill scripts against it.
//
// A typical run starts a session, navigates, collects one PageDetails per
// frame, generates scripts with autofill.Service, and replays each script on
// the frame it came from:
//
//	manager := browser.NewSessionManager()
//	if err := manager.Initialize(); err != nil {
//		return err
//	}
//	defer manager.Shutdown()
//
//	session, _ := manager.StartSession("fill", browser.SessionOptions{Headless: true})
//	defer manager.CloseSession("fill")
//	session.Navigate("https://example.com/login", browser.NavigateOptions{})
//	pages, _ := session.CollectPageDetails(ctx)
//	result, _ := service.Autofill(autofill.Request{Pages: pages, Options: opts})
//
//	replayer := browser.NewReplayer(logger)
//	replayer.StampedOPIDs = true
//	for _, script := range result.Scripts {
//		target, page, _ := session.TargetFor(script.DocumentUUID)
//		replayer.Replay(ctx, script, page, target)
//	}
//
// Replay only needs the Target interface, so scripts can be applied to any
// element driver that acts on CSS selectors.
package browser
