package application_test

import (
	"context"
	"io"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/application"
	"github.com/cluedesc/clueapi-sub000/config"
	"github.com/cluedesc/clueapi-sub000/httpmethod"
	"github.com/cluedesc/clueapi-sub000/httpresponse"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
)

var _ = Describe("Application", func() {
	It("serves a registered route end to end and stops cleanly", func() {
		cfg := config.Default()
		cfg.Server.HostPort = "127.0.0.1:0"
		cfg.Server.Workers = 2
		cfg.Server.MaxConnections = 4
		cfg.Server.ShutdownTimeout = 2 * time.Second

		app := application.New(cfg, nil)

		err := app.Router.Insert(httpmethod.GET, "/hello", func(ctx *reqcontext.Context) *httpresponse.Response {
			return httpresponse.Text(200, "hi")
		})
		Expect(err).To(BeNil())

		startErr := app.Start(context.Background())
		Expect(startErr).To(BeNil())
		Expect(app.IsRunning()).To(BeTrue())

		addr := waitForListener(app)

		conn, derr := net.DialTimeout("tcp", addr, time.Second)
		Expect(derr).To(BeNil())
		defer conn.Close()

		_, _ = conn.Write([]byte("GET /hello HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))

		buf := make([]byte, 512)
		n, rerr := conn.Read(buf)
		Expect(rerr == nil || rerr == io.EOF).To(BeTrue())
		Expect(string(buf[:n])).To(ContainSubstring("200"))

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		stopErr := app.Stop(ctx)
		Expect(stopErr).To(BeNil())

		app.Wait()
		Expect(app.IsRunning()).To(BeFalse())
	})

	It("rejects a second Start while already running", func() {
		cfg := config.Default()
		cfg.Server.HostPort = "127.0.0.1:0"
		cfg.Server.Workers = 1
		cfg.Server.MaxConnections = 2

		app := application.New(cfg, nil)
		Expect(app.Start(context.Background())).To(BeNil())

		err := app.Start(context.Background())
		Expect(err).ToNot(BeNil())

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = app.Stop(ctx)
		app.Wait()
	})
})

func waitForListener(app *application.Application) string {
	var addr string

	Eventually(func() bool {
		addr = app.Addr()
		return addr != ""
	}, time.Second).Should(BeTrue())

	return addr
}
