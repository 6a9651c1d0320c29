// Command kadmin-probe drives the admin engine end to end against an
// in-memory fake cluster, printing each API's result as it arrives. It
// exists to exercise the engine's external interface (spec.md §6) without a
// real broker connection.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kadmin/kadmin"
)

func main() {
	verbose := flag.Bool("v", false, "enable diagnostic logging")
	jsonLog := flag.Bool("json", false, "use zerolog JSON logging instead of the stdlib default (requires -v)")
	timeout := flag.Duration("timeout", 5*time.Second, "per-request timeout")
	flag.Parse()

	switch {
	case !*verbose:
		kadmin.Logger = kadmin.NullLogger{}
	case *jsonLog:
		kadmin.Logger = kadmin.NewZerologAdapter(zerolog.New(os.Stderr).With().Timestamp().Logger())
	}

	client := kadmin.NewFakeClient(kadmin.NewConfig())
	broker := kadmin.NewFakeBroker(1, routeRequest, 10*time.Millisecond)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, err := kadmin.NewAdminClient(client, nil)
	if err != nil {
		log.Fatalf("kadmin-probe: %v", err)
	}
	defer admin.Close()

	var eg errgroup.Group

	eg.Go(func() error {
		return runCreateTopics(admin, *timeout)
	})
	eg.Go(func() error {
		return runCreatePartitions(admin, *timeout)
	})
	eg.Go(func() error {
		return runDescribeConfigs(admin, *timeout)
	})
	eg.Go(func() error {
		return runDeleteTopics(admin, *timeout)
	})

	if err := eg.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// routeRequest answers every request kind the probe submits with a
// plausible success response, simulating a single cooperative broker.
func routeRequest(kind kadmin.RequestKind, req any) (any, error) {
	switch kind {
	case kadmin.KindCreateTopics:
		r := req.(*kadmin.CreateTopicsRequest)
		errs := make(map[string]kadmin.TopicError, len(r.Topics))
		for name := range r.Topics {
			errs[name] = kadmin.TopicError{Err: kadmin.ErrNoError}
		}
		return &kadmin.CreateTopicsResponse{TopicErrors: errs}, nil
	case kadmin.KindDeleteTopics:
		r := req.(*kadmin.DeleteTopicsRequest)
		errs := make(map[string]kadmin.KError, len(r.Topics))
		for _, name := range r.Topics {
			errs[name] = kadmin.ErrNoError
		}
		return &kadmin.DeleteTopicsResponse{TopicErrorCodes: errs}, nil
	case kadmin.KindCreatePartitions:
		r := req.(*kadmin.CreatePartitionsRequest)
		errs := make(map[string]kadmin.TopicError, len(r.TopicPartitions))
		for name := range r.TopicPartitions {
			errs[name] = kadmin.TopicError{Err: kadmin.ErrNoError}
		}
		return &kadmin.CreatePartitionsResponse{TopicPartitionErrors: errs}, nil
	case kadmin.KindDescribeConfigs:
		r := req.(*kadmin.DescribeConfigsRequest)
		out := make([]kadmin.ResourceError, 0, len(r.Resources))
		for _, res := range r.Resources {
			out = append(out, kadmin.ResourceError{
				Type: res.Type,
				Name: res.Name,
				Err:  kadmin.ErrNoError,
				Configs: []kadmin.ConfigEntry{
					{Name: "retention.ms", Value: strPtr("604800000"), Source: kadmin.SourceDefaultConfig},
				},
			})
		}
		return &kadmin.DescribeConfigsResponse{Version: 1, Resources: out}, nil
	default:
		return nil, fmt.Errorf("kadmin-probe: unhandled request kind %s", kind)
	}
}

func runCreateTopics(admin *kadmin.AdminClient, timeout time.Duration) error {
	replyCh := make(chan kadmin.Event, 1)
	opts := kadmin.NewAdminOptions(kadmin.KindCreateTopics)
	_ = opts.SetRequestTimeout(timeout)
	admin.CreateTopics([]kadmin.NewTopic{{Topic: "orders", PartitionCount: 6, ReplicationFactor: 3}}, opts, replyCh)

	ev := <-replyCh
	res := ev.(*kadmin.CreateTopicsResult)
	if res.Err() != nil {
		return fmt.Errorf("CreateTopics: %w", res.Err())
	}
	for _, tr := range res.Topics {
		fmt.Printf("CreateTopics %s: err=%v\n", tr.Topic, tr.Err)
	}
	return nil
}

func runDeleteTopics(admin *kadmin.AdminClient, timeout time.Duration) error {
	replyCh := make(chan kadmin.Event, 1)
	opts := kadmin.NewAdminOptions(kadmin.KindDeleteTopics)
	_ = opts.SetRequestTimeout(timeout)
	admin.DeleteTopics([]string{"stale-topic"}, opts, replyCh)

	ev := <-replyCh
	res := ev.(*kadmin.DeleteTopicsResult)
	if res.Err() != nil {
		return fmt.Errorf("DeleteTopics: %w", res.Err())
	}
	for _, tr := range res.Topics {
		fmt.Printf("DeleteTopics %s: err=%v\n", tr.Topic, tr.Err)
	}
	return nil
}

func runCreatePartitions(admin *kadmin.AdminClient, timeout time.Duration) error {
	replyCh := make(chan kadmin.Event, 1)
	opts := kadmin.NewAdminOptions(kadmin.KindCreatePartitions)
	_ = opts.SetRequestTimeout(timeout)
	admin.CreatePartitions([]kadmin.NewPartitions{{Topic: "orders", TotalCount: 12}}, opts, replyCh)

	ev := <-replyCh
	res := ev.(*kadmin.CreatePartitionsResult)
	if res.Err() != nil {
		return fmt.Errorf("CreatePartitions: %w", res.Err())
	}
	for _, tr := range res.Topics {
		fmt.Printf("CreatePartitions %s: err=%v\n", tr.Topic, tr.Err)
	}
	return nil
}

func runDescribeConfigs(admin *kadmin.AdminClient, timeout time.Duration) error {
	replyCh := make(chan kadmin.Event, 1)
	opts := kadmin.NewAdminOptions(kadmin.KindDescribeConfigs)
	_ = opts.SetRequestTimeout(timeout)
	admin.DescribeConfigs([]kadmin.ConfigResource{{Type: kadmin.ResourceTopic, Name: "orders"}}, opts, replyCh)

	ev := <-replyCh
	res := ev.(*kadmin.DescribeConfigsResult)
	if res.Err() != nil {
		return fmt.Errorf("DescribeConfigs: %w", res.Err())
	}
	for _, rr := range res.Resources {
		fmt.Printf("DescribeConfigs %s/%s: err=%v configs=%d\n", rr.Type, rr.Name, rr.Err, len(rr.Configs))
	}
	return nil
}

func strPtr(s string) *string { return &s }
