package main

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/pvwatch/growatt-go"
)

// Collector implements prometheus.Collector over the Growatt OpenAPI. One
// scrape walks the configured plants, emitting plant production gauges and
// per-device status. The client's response cache keeps repeated scrapes
// below the vendor's 5-minute rate limit.
type Collector struct {
	client   *growatt.Client
	plantIDs []int
	log      logrus.FieldLogger

	plantCurrentPower *prometheus.Desc
	plantEnergyToday  *prometheus.Desc
	plantEnergyTotal  *prometheus.Desc
	plantPeakPower    *prometheus.Desc
	deviceStatus      *prometheus.Desc
	deviceLost        *prometheus.Desc
	deviceEnergyDay   *prometheus.Desc
	scrapeSuccess     *prometheus.Desc
}

// NewCollector creates a Growatt collector for the given plants.
func NewCollector(client *growatt.Client, plantIDs []int, log logrus.FieldLogger) *Collector {
	plantLabels := []string{"plant_id", "plant_name"}
	deviceLabels := []string{"plant_id", "device_sn", "device_type"}
	return &Collector{
		client:   client,
		plantIDs: plantIDs,
		log:      log,
		plantCurrentPower: prometheus.NewDesc(
			"growatt_plant_current_power_watts",
			"Current plant output power in watts",
			plantLabels,
			nil,
		),
		plantEnergyToday: prometheus.NewDesc(
			"growatt_plant_energy_today_kwh",
			"Plant production today in kilowatt-hours",
			plantLabels,
			nil,
		),
		plantEnergyTotal: prometheus.NewDesc(
			"growatt_plant_energy_total_kwh",
			"Lifetime plant production in kilowatt-hours",
			plantLabels,
			nil,
		),
		plantPeakPower: prometheus.NewDesc(
			"growatt_plant_peak_power_watts",
			"Peak plant output power today in watts",
			plantLabels,
			nil,
		),
		deviceStatus: prometheus.NewDesc(
			"growatt_device_status",
			"Vendor status code of the device",
			deviceLabels,
			nil,
		),
		deviceLost: prometheus.NewDesc(
			"growatt_device_lost",
			"Device has lost communication (1=yes, 0=no)",
			deviceLabels,
			nil,
		),
		deviceEnergyDay: prometheus.NewDesc(
			"growatt_device_energy_today_kwh",
			"Device production today in kilowatt-hours",
			deviceLabels,
			nil,
		),
		scrapeSuccess: prometheus.NewDesc(
			"growatt_scrape_success",
			"Whether scraping the plant succeeded",
			[]string{"plant_id"},
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.plantCurrentPower
	ch <- c.plantEnergyToday
	ch <- c.plantEnergyTotal
	ch <- c.plantPeakPower
	ch <- c.deviceStatus
	ch <- c.deviceLost
	ch <- c.deviceEnergyDay
	ch <- c.scrapeSuccess
}

// Collect implements prometheus.Collector. The underlying client is not
// goroutine-safe, so plants are scraped sequentially.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, plantID := range c.plantIDs {
		c.collectPlant(plantID, ch)
	}
}

func (c *Collector) collectPlant(plantID int, ch chan<- prometheus.Metric) {
	id := strconv.Itoa(plantID)

	overview, err := c.client.Plant.EnergyOverview(plantID)
	if err != nil {
		c.log.WithField("plant_id", plantID).WithError(err).Error("failed to scrape plant overview")
		ch <- prometheus.MustNewConstMetric(c.scrapeSuccess, prometheus.GaugeValue, 0, id)
		return
	}
	details, err := c.client.Plant.Details(plantID)
	if err != nil {
		c.log.WithField("plant_id", plantID).WithError(err).Error("failed to scrape plant details")
		ch <- prometheus.MustNewConstMetric(c.scrapeSuccess, prometheus.GaugeValue, 0, id)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.scrapeSuccess, prometheus.GaugeValue, 1, id)

	labels := []string{id, details.Data.Name}
	ch <- prometheus.MustNewConstMetric(c.plantCurrentPower, prometheus.GaugeValue, overview.Data.CurrentPower, labels...)
	ch <- prometheus.MustNewConstMetric(c.plantPeakPower, prometheus.GaugeValue, overview.Data.PeakPowerActual, labels...)
	if today, err := strconv.ParseFloat(overview.Data.TodayEnergy, 64); err == nil {
		ch <- prometheus.MustNewConstMetric(c.plantEnergyToday, prometheus.GaugeValue, today, labels...)
	}
	if total, err := strconv.ParseFloat(overview.Data.TotalEnergy, 64); err == nil {
		ch <- prometheus.MustNewConstMetric(c.plantEnergyTotal, prometheus.CounterValue, total, labels...)
	}

	devices, err := c.client.Device.List(plantID, growatt.Pagination{PerPage: 100})
	if err != nil {
		c.log.WithField("plant_id", plantID).WithError(err).Error("failed to scrape device list")
		return
	}
	for _, dev := range devices.Data.Devices {
		family, ok := growatt.DeviceTypeFromDeviceList(dev.Type)
		if !ok {
			family = growatt.DeviceTypeOther
		}
		devLabels := []string{id, dev.DeviceSN, string(family)}
		ch <- prometheus.MustNewConstMetric(c.deviceStatus, prometheus.GaugeValue, float64(dev.Status), devLabels...)
		lost := 0.0
		if dev.Lost {
			lost = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.deviceLost, prometheus.GaugeValue, lost, devLabels...)

		day, err := c.client.Device.EnergyDay(dev.DeviceSN, time.Time{})
		if err != nil {
			c.log.WithField("device_sn", dev.DeviceSN).WithError(err).Warn("failed to scrape device day energy")
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.deviceEnergyDay, prometheus.GaugeValue, day.Data, devLabels...)
	}
}
