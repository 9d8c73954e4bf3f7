package photo

import (
	"fmt"
	"math/rand"
)

// Prompt упражнение осознанной паузы
type Prompt struct {
	ID          string     `json:"id"`
	Type        PromptType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Instruction string     `json:"instruction"`
}

var catalogue = []Prompt{
	{ID: "photo-nature", Type: PromptPhoto, Title: "Красота природы", Description: "Найдите что-то живое",
		Instruction: "Сфотографируйте растение, цветок, дерево или природную фактуру"},
	{ID: "photo-pattern", Type: PromptPhoto, Title: "Охота за узорами", Description: "Ищите интересные узоры",
		Instruction: "Снимите повторяющийся узор вокруг себя"},
	{ID: "photo-color", Type: PromptPhoto, Title: "Всплеск цвета", Description: "Найдите яркие цвета",
		Instruction: "Сфотографируйте необычное сочетание цветов"},
	{ID: "photo-texture", Type: PromptPhoto, Title: "Фактуры", Description: "Рассмотрите поверхности",
		Instruction: "Снимите интересную фактуру: шершавую, гладкую, какую угодно"},
	{ID: "photo-shape", Type: PromptPhoto, Title: "Поиск форм", Description: "Замечайте геометрию",
		Instruction: "Найдите и сфотографируйте круги, квадраты и треугольники вокруг"},
	{ID: "photo-light", Type: PromptPhoto, Title: "Свет и тень", Description: "Наблюдайте за освещением",
		Instruction: "Поймайте в кадр игру света или тени"},

	{ID: "sensory-up", Type: PromptSensory, Title: "Взгляд вверх", Description: "Поднимите глаза",
		Instruction: "Посмотрите вверх и найдите 3 вещи, которых раньше не замечали: облака, дома, птиц"},
	{ID: "sensory-down", Type: PromptSensory, Title: "Взгляд вниз", Description: "Почувствуйте опору",
		Instruction: "Посмотрите под ноги и рассмотрите фактуру земли, узоры, мелкие детали"},
	{ID: "sensory-left", Type: PromptSensory, Title: "Взгляд влево", Description: "Расширьте внимание",
		Instruction: "Поверните голову влево и отметьте цвета, формы и движение"},
	{ID: "sensory-right", Type: PromptSensory, Title: "Взгляд вправо", Description: "Смените перспективу",
		Instruction: "Посмотрите вправо и найдите что-то интересное или красивое"},
	{ID: "sensory-sound", Type: PromptSensory, Title: "Глубокое слушание", Description: "Сосредоточьтесь на звуках",
		Instruction: "Закройте глаза и различите 3 разных звука вокруг"},
	{ID: "sensory-touch", Type: PromptSensory, Title: "Прикосновение", Description: "Включите осязание",
		Instruction: "Коснитесь 3 разных поверхностей и отметьте их температуру и фактуру"},
	{ID: "sensory-smell", Type: PromptSensory, Title: "Запахи", Description: "Пробудите обоняние",
		Instruction: "Сделайте 3 глубоких вдоха и различите запахи в воздухе"},
	{ID: "sensory-color", Type: PromptSensory, Title: "Охота за цветом", Description: "Ищите заданные цвета",
		Instruction: "Найдите вокруг что-то синее, потом зеленое, потом желтое"},

	{ID: "breath-4-7-8", Type: PromptBreathing, Title: "Дыхание 4-7-8", Description: "Успокойте нервную систему",
		Instruction: "Вдох на 4 счета, задержка на 7, выдох на 8. Повторите 3 раза."},
	{ID: "breath-box", Type: PromptBreathing, Title: "Квадратное дыхание", Description: "Найдите фокус и равновесие",
		Instruction: "Вдох на 4, задержка на 4, выдох на 4, задержка на 4. Повторите 4 раза."},
	{ID: "breath-deep", Type: PromptBreathing, Title: "Дыхание животом", Description: "Отпустите напряжение",
		Instruction: "Положите руку на живот и дышите так, чтобы рука поднималась. Медленно выдыхайте."},

	{ID: "reflection-gratitude", Type: PromptReflection, Title: "Минута благодарности", Description: "Практика признательности",
		Instruction: "Вспомните 3 вещи, за которые вы благодарны прямо сейчас"},
	{ID: "reflection-body", Type: PromptReflection, Title: "Прислушайтесь к телу", Description: "Почувствуйте тело",
		Instruction: "Заметьте, как чувствуют себя стопы, и пройдитесь вниманием по всему телу"},
	{ID: "reflection-intention", Type: PromptReflection, Title: "Намерение", Description: "Сосредоточьте ум",
		Instruction: "Что вы хотите взять с собой в оставшуюся часть прогулки? Сформулируйте простое намерение."},
}

// fallbackPrompt выдается, если не включен ни один тип упражнений
const fallbackPrompt = "sensory-up"

// Prompts возвращает упражнения выбранных типов в порядке каталога; без типов весь каталог
func Prompts(types ...PromptType) []Prompt {
	if len(types) == 0 {
		return append([]Prompt(nil), catalogue...)
	}

	out := make([]Prompt, 0, len(catalogue))
	for _, p := range catalogue {
		for _, t := range types {
			if p.Type == t {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ParsePromptTypes разбирает типы упражнений из строк
func ParsePromptTypes(raw []string) ([]PromptType, error) {
	out := make([]PromptType, 0, len(raw))
	for _, r := range raw {
		t := PromptType(r)
		if !t.Valid() {
			return nil, fmt.Errorf("неизвестный тип упражнения %q (photo, sensory, breathing, reflection)", r)
		}
		out = append(out, t)
	}
	return out, nil
}

func FindPrompt(id string) (Prompt, bool) {
	for _, p := range catalogue {
		if p.ID == id {
			return p, true
		}
	}
	return Prompt{}, false
}

// RandomPrompt выбирает упражнение среди включенных типов. pick возвращает
// число из [0, n); nil означает math/rand.
func RandomPrompt(pick func(n int) int, enabled ...PromptType) Prompt {
	if pick == nil {
		pick = rand.Intn
	}

	var available []Prompt
	if len(enabled) > 0 {
		available = Prompts(enabled...)
	}
	if len(available) == 0 {
		p, _ := FindPrompt(fallbackPrompt)
		return p
	}
	return available[pick(len(available))]
}

// RandomStepsInterval число шагов до следующей паузы в диапазоне [lo, hi]
func RandomStepsInterval(pick func(n int) int, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	if pick == nil {
		pick = rand.Intn
	}
	return lo + pick(hi-lo+1)
}
