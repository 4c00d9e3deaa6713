package regenerate_slots

// Request модель запроса регенерации сетки слотов
type Request struct {
	Days int // Горизонт в днях; 0 означает дефолтный
}

// Response модель ответа с результатом регенерации
type Response struct {
	Days            int    // Обработанный горизонт в днях
	SlotsCreated    int    // Число созданных слотов
	IntervalMinutes int    // Использованная длительность слота
	From            string // Первая дата диапазона
	To              string // Последняя дата диапазона
}
