package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes per-case outcome counters to CloudWatch.
// All writes are best-effort; callers log failures and move on.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	nowFunc    func() time.Time
}

// NewMetrics returns a Metrics publisher under the given namespace.
func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{
		CloudWatch: cw,
		Namespace:  namespace,
		nowFunc:    time.Now,
	}
}

// CountCaseOutcome increments a counter metric named after the case outcome,
// dimensioned by intent (e.g. CaseEscalated{Intent=REFUND_REQUEST}).
func (m *Metrics) CountCaseOutcome(ctx context.Context, metricName, intent string) error {
	now := m.nowFunc()
	one := 1.0
	datum := cwtypes.MetricDatum{
		MetricName: &metricName,
		Timestamp:  &now,
		Value:      &one,
		Unit:       cwtypes.StandardUnitCount,
		Dimensions: []cwtypes.Dimension{
			{Name: awsString("Intent"), Value: &intent},
		},
	}
	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &m.Namespace,
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
