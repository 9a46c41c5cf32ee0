// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command capbench provides a load-generation tool for the Computer
// Access Platform backend.
package main

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/restclient"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

type benchWork struct {
	Client      access.API
	Concurrency int

	lock     sync.Mutex
	outcomes map[string]int
}

func (bench *benchWork) Run(runner func()) {
	wg := sync.WaitGroup{}
	wg.Add(bench.Concurrency)
	for i := 0; i < bench.Concurrency; i++ {
		go func() {
			defer wg.Done()
			runner()
		}()
	}
	wg.Wait()
}

// Record counts the outcome of one call.
func (bench *benchWork) Record(op string, err error) {
	bench.lock.Lock()
	defer bench.lock.Unlock()
	if bench.outcomes == nil {
		bench.outcomes = make(map[string]int)
	}
	bench.outcomes[op+" "+access.Classify(err).String()]++
}

// Report logs the outcome counts and elapsed time.
func (bench *benchWork) Report(start time.Time) {
	bench.lock.Lock()
	defer bench.lock.Unlock()
	fields := logrus.Fields{"elapsed": time.Since(start)}
	for key, count := range bench.outcomes {
		fields[key] = count
	}
	logrus.WithFields(fields).Info("benchmark finished")
}

// Session registers a fresh user.
func (bench *benchWork) Session(ctx context.Context) (access.Session, error) {
	email := uuid.NewV4().String() + "@bench.example.com"
	session, err := bench.Client.Register(ctx, email, "bench", access.RoleUser)
	bench.Record("register", err)
	return session, err
}

var bench benchWork

var addAccounts = cli.Command{
	Name:  "accounts",
	Usage: "register many accounts",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "number of accounts to create",
		},
	},
	Action: func(c *cli.Context) {
		ctx := context.Background()
		count := c.Int("count")
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()
		start := time.Now()
		bench.Run(func() {
			for <-numbers != 0 {
				_, _ = bench.Session(ctx)
			}
		})
		bench.Report(start)
	},
}

var churn = cli.Command{
	Name:  "churn",
	Usage: "repeatedly reserve and relieve every computer",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "rounds",
			Value: 10,
			Usage: "passes over the computer list per worker",
		},
		cli.DurationFlag{
			Name:  "hold",
			Value: 0,
			Usage: "keep each reserved computer this long",
		},
	},
	Action: func(c *cli.Context) {
		ctx := context.Background()
		rounds := c.Int("rounds")
		hold := c.Duration("hold")
		start := time.Now()
		bench.Run(func() {
			session, err := bench.Session(ctx)
			if err != nil {
				return
			}
			computers, err := bench.Client.GetAll(ctx, session.Token)
			bench.Record("get_all", err)
			if err != nil {
				return
			}
			for i := 0; i < rounds; i++ {
				for _, computer := range computers {
					id, _ := computer["id"].(string)
					ok, err := bench.Client.ReserveComputer(ctx, id, session.Token)
					bench.Record("reserve_computer", err)
					if !ok {
						continue
					}
					time.Sleep(hold)
					_, err = bench.Client.RelieveComputer(ctx, id, session.Token)
					bench.Record("relieve_computer", err)
				}
			}
		})
		bench.Report(start)
	},
}

func main() {
	app := cli.NewApp()
	app.Usage = "benchmark the Computer Access Platform"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "url",
			Value: restclient.DefaultBaseURL,
			Usage: "base URL of the backend",
		},
		cli.IntFlag{
			Name:  "concurrency",
			Value: runtime.NumCPU(),
			Usage: "run this many clients in parallel",
		},
	}
	app.Commands = []cli.Command{
		addAccounts,
		churn,
	}
	app.Before = func(c *cli.Context) (err error) {
		// Contention is expected; only the totals matter
		log := logrus.New()
		log.Level = logrus.FatalLevel
		bench.Client, err = restclient.New(restclient.Config{
			BaseURL: c.String("url"),
			Logger:  log,
		})
		if err != nil {
			return
		}

		bench.Concurrency = c.Int("concurrency")

		return
	}
	app.RunAndExitOnError()
}
