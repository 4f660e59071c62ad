package callback

import "github.com/prometheus/client_golang/prometheus"

// ============================================================================
// Prometheus 指标
// ============================================================================

// StatsSource 统计数据来源
//
// 两种注册表变体都实现该接口。
type StatsSource interface {
	Stats() Stats
}

// Collector 将注册表统计暴露为 Prometheus 指标
//
// 采集时对来源做一次 Stats 快照，转换为常量指标，自身不持有状态。
type Collector struct {
	source StatsSource

	subscribers *prometheus.Desc
	delivered   *prometheus.Desc
	congested   *prometheus.Desc
	pruned      *prometheus.Desc
}

// NewCollector 创建指标采集器
//
// namespace 用于区分同一进程内的多个注册表。
func NewCollector(namespace string, source StatsSource) *Collector {
	return &Collector{
		source: source,
		subscribers: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "callback", "subscribers"),
			"当前存活的订阅者数量",
			nil, nil),
		delivered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "callback", "delivered_total"),
			"成功投递的事件总数",
			nil, nil),
		congested: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "callback", "congested_total"),
			"因缓冲区满被丢弃的事件总数",
			nil, nil),
		pruned: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "callback", "pruned_total"),
			"已清理的死亡订阅者总数",
			nil, nil),
	}
}

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.subscribers
	ch <- c.delivered
	ch <- c.congested
	ch <- c.pruned
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.subscribers, prometheus.GaugeValue, float64(stats.Subscribers))
	ch <- prometheus.MustNewConstMetric(c.delivered, prometheus.CounterValue, float64(stats.Delivered))
	ch <- prometheus.MustNewConstMetric(c.congested, prometheus.CounterValue, float64(stats.Congested))
	ch <- prometheus.MustNewConstMetric(c.pruned, prometheus.CounterValue, float64(stats.Pruned))
}
