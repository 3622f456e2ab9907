package advisor

import (
	"fmt"
	"strconv"
	"strings"
)

// Generated text is always Ukrainian.
const (
	degradedMessage = "Не вдалося отримати рекомендації щодо одягу"
	errorPrefix     = "Помилка: "
)

func buildPrompt(record WeatherRecord, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Проаналізуй цю інформацію про погоду в %s:\n", location)
	fmt.Fprintf(&b, "Мінімальна температура: %s°C\n", formatMetric(record.MinTemp))
	fmt.Fprintf(&b, "Середня температура: %s°C\n", formatMetric(record.AvgTemp))
	fmt.Fprintf(&b, "Максимальна температура: %s°C\n", formatMetric(record.MaxTemp))
	fmt.Fprintf(&b, "Відчувається як: %s°C\n", formatMetric(record.FeelsLike))
	fmt.Fprintf(&b, "Ймовірність опадів: %s%%\n", formatMetric(record.RainProbability))
	fmt.Fprintf(&b, "Кількість опадів: %s мм\n", formatMetric(record.TotalRainfallMM))
	fmt.Fprintf(&b, "Швидкість вітру: %s км/год\n", formatMetric(record.AvgWindSpeedKMH))
	fmt.Fprintf(&b, "Пориви вітру: %s км/год\n", formatMetric(record.MaxWindGustKMH))
	fmt.Fprintf(&b, "Напрямок вітру: %s°\n", formatMetric(record.WindDirection))
	fmt.Fprintf(&b, "Атмосферний тиск: %s гПа\n", formatMetric(record.PressureHPA))
	fmt.Fprintf(&b, "Вологість: %s%%\n", formatMetric(record.Humidity))
	fmt.Fprintf(&b, "Точка роси: %s°C\n", formatMetric(record.DewPoint))
	fmt.Fprintf(&b, "Індекс УФ: %s\n", formatMetric(record.UVIndex))
	fmt.Fprintf(&b, "Хмарність: %s%%\n", formatMetric(record.CloudCover))
	fmt.Fprintf(&b, "Видимість: %s км\n", formatMetric(record.VisibilityKM))
	fmt.Fprintf(&b, "Опис погоди: %s\n\n", record.Description)

	b.WriteString("Порадь, що краще одягнути сьогодні, враховуючи ці погодні умови.\n")
	b.WriteString("Також вкажи, чи є якісь застереження (наприклад, погана видимість, сильний вітер, екстремальна температура тощо).\n")
	b.WriteString("Дай відповідь на такі питання:\n")
	b.WriteString("1. Як одягатися в цей день та які конкретно речі краще одягнути (куртка, светр, футболка і т.д.)?\n")
	b.WriteString("2. Які застереження щодо здоров'я варто врахувати через погодні умови?\n\n")
	b.WriteString("Надай відповідь українською мовою у форматі JSON з полями:\n")
	b.WriteString("\"clothing\": [список речей],\n")
	b.WriteString("\"health_warnings\": [застереження для здоров'я]\n")
	return b.String()
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
