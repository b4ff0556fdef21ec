package insights

import "math/rand"

// Tip is a titled piece of savings advice.
type Tip struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// maxTips is the number of tips returned per request.
const maxTips = 3

// baseTips is the fixed advice pool shown to every user.
var baseTips = []Tip{
	{
		Title:   "التخطيط للوجبات",
		Message: "خطط لوجباتك الأسبوعية مسبقًا واشترِ البقالة وفقًا لذلك. هذا يمكن أن يوفر ما يصل إلى 30% من نفقات الطعام الخاصة بك.",
	},
	{
		Title:   "استخدم المواصلات العامة",
		Message: "فكر في استخدام المواصلات العامة بدلاً من سيارتك للرحلات القصيرة. هذا يوفر في تكاليف الوقود والصيانة.",
	},
	{
		Title:   "قاعدة 24 ساعة",
		Message: "قبل إجراء عملية شراء كبيرة، انتظر 24 ساعة. غالبًا ما يساعدك هذا في تجنب المشتريات الاندفاعية.",
	},
	{
		Title:   "توفير الطاقة",
		Message: "اخفض فاتورة الكهرباء الخاصة بك عن طريق إطفاء الأجهزة عند عدم استخدامها وتركيب مصابيح LED موفرة للطاقة.",
	},
	{
		Title:   "خفض نفقات الترفيه",
		Message: "ابحث عن أنشطة ترفيهية مجانية أو منخفضة التكلفة. استكشف الحدائق المحلية والمتاحف والفعاليات المجتمعية.",
	},
}

// conditionalTips are appended to the pool only when the named category
// saw spending this month. conditionalOrder keeps pool construction
// deterministic for a given input.
var (
	conditionalOrder = []string{"Food", "Shopping", "Entertainment"}

	conditionalTips = map[string]Tip{
		"Food": {
			Title:   "وفر على الطعام",
			Message: "تحضير وجبات المنزل يمكن أن يوفر لك الكثير. جرب تحضير وجبات الغداء للعمل بدلاً من شراء الطعام الجاهز.",
		},
		"Shopping": {
			Title:   "قارن الأسعار",
			Message: "قبل شراء أي منتج، قارن الأسعار بين المتاجر المختلفة أو عبر الإنترنت. يمكنك توفير ما يصل إلى 20% بهذه الطريقة.",
		},
		"Entertainment": {
			Title:   "اشتراكات الترفيه",
			Message: "راجع اشتراكاتك الشهرية (نتفليكس، سبوتيفاي، إلخ) وألغِ تلك التي لا تستخدمها بانتظام.",
		},
	}
)

// SelectTips returns a uniform sample without replacement of up to
// three tips from the base pool plus any conditional tips whose
// category has nonzero spending. The caller provides the random
// source, so a seeded generator yields a reproducible selection.
func SelectTips(categorySpending map[string]float64, rng *rand.Rand) []Tip {
	pool := make([]Tip, len(baseTips), len(baseTips)+len(conditionalOrder))
	copy(pool, baseTips)
	for _, name := range conditionalOrder {
		if categorySpending[name] > 0 {
			pool = append(pool, conditionalTips[name])
		}
	}

	n := maxTips
	if len(pool) < n {
		n = len(pool)
	}

	picked := make([]Tip, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}
