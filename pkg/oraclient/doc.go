// Package oraclient provides an embeddable Open Roberta robot client.
//
// A Client keeps the on-device hal firmware library in sync with the server
// and then registers the robot and polls the server for commands. The server
// either asks the robot to keep waiting, hands it a program to download and
// run, or aborts the session.
//
// # Basic Usage
//
//	cfg := oraclient.Config{
//	    ServerURL: "https://lab.open-roberta.org",
//	    WorkDir:   "/home/nao/robertalab",
//	}
//
//	c, err := oraclient.New(cfg, oraclient.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("enter this token on the server:", c.Token())
//
//	err = c.Run(ctx)
//	if errors.Is(err, oraclient.ErrUpdateUnavailable) {
//	    // nothing to run without firmware
//	}
//
// # Firmware Sync
//
// Before the session starts, the client compares the server's checksum for
// /update/<robot>/<version>/hal with the checksum stored in WorkDir and
// downloads and unpacks the bundle when they differ. The checksum request is
// retried until it succeeds or the context is cancelled.
//
// # Programs
//
// Downloaded programs are stored in WorkDir under the name the server sends.
// They are run with Config.RunCommand or a custom [Executor] set via
// [WithExecutor]. Without either, programs are stored and reported as exiting
// with "0".
//
// # Events
//
// Implement [EventHandler] (or embed [BaseEventHandler]) and pass it via
// [WithEventHandler] to observe state changes, directives and connectivity
// errors.
package oraclient
