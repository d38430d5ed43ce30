/*
Package resilience provides a circuit breaker for calls to the model endpoint.

When the endpoint keeps failing the breaker opens and calls fail fast with
ErrCircuitOpen, which the agent session reports as an interrupted connection
instead of waiting out the full request timeout every time.

	breaker := resilience.New("agent", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})

	reply, err := resilience.Execute(ctx, breaker, func(ctx context.Context) (*Reply, error) {
		return client.Send(ctx, turn)
	})

States move Closed -> Open on ReadyToTrip, Open -> Half-Open after Timeout,
and Half-Open -> Closed after MaxRequests consecutive successes. Any failure
while half-open reopens the breaker. Context cancellation is not counted as
a failure.
*/
package resilience
