package collector

// Page scripts. Each is a self-contained arrow function evaluated in page
// context that returns a JSON array of raw observations. Scripts share the
// jsPrelude helpers; each script walks the rendered DOM read-only, skips
// invisible and zero-size elements, and caps the walk so pathological pages
// cannot stall an evaluation.

func init() {
	register(CategoryColors, colorsJS, decodeColors)
	register(CategoryTypography, typographyJS, decodeTypography)
	register(CategorySpacing, spacingJS, decodeSpacing)
	register(CategoryRadius, radiusJS, decodeRadius)
	register(CategoryBorders, bordersJS, decodeBorders)
	register(CategoryShadows, shadowsJS, decodeShadows)
	register(CategoryLogo, logoJS, decodeLogos)
}

// jsPrelude defines helpers shared by every script:
//   - visible: excludes display:none, visibility:hidden and zero-size elements
//     so invisible UI never pollutes the signal. Size comes from
//     getBoundingClientRect because offsetWidth/offsetHeight do not exist on
//     SVG elements.
//   - contextFor: maps an element onto its role tag, checked most-specific
//     first (logo/brand before structural roles before generic)
const jsPrelude = `
	const visible = (el, cs) => {
		if (cs.display === 'none' || cs.visibility === 'hidden') return false;
		const r = el.getBoundingClientRect();
		return r.width > 0 && r.height > 0;
	};
	const contextFor = (el) => {
		const tag = el.tagName.toLowerCase();
		const role = (el.getAttribute('role') || '').toLowerCase();
		const cls = (typeof el.className === 'string' ? el.className : (el.className && el.className.baseVal) || '').toLowerCase();
		const hint = cls + ' ' + (el.id || '').toLowerCase();
		if (hint.includes('logo') || el.closest('[class*="logo" i], [id*="logo" i]')) return 'logo';
		if (hint.includes('brand')) return 'brand';
		if (tag === 'button' || role === 'button' || hint.includes('btn') || hint.includes('button')) return 'button';
		if (hint.includes('hero')) return 'hero';
		if (tag === 'nav' || role === 'navigation' || el.closest('nav')) return 'nav';
		if (tag === 'header' || role === 'banner' || el.closest('header')) return 'header';
		if (/^h[1-6]$/.test(tag)) return 'heading';
		if (tag === 'a') return 'link';
		if (tag === 'footer' || el.closest('footer')) return 'footer';
		if (tag === 'p' || tag === 'span' || tag === 'li' || tag === 'blockquote' || tag === 'body') return 'body';
		return 'generic';
	};
`

// jsBudget bounds every DOM walk.
const jsBudget = `let budget = 5000;`

const colorsJS = `() => {` + jsPrelude + jsBudget + `
	const counts = new Map();
	const tally = (color, property, context) => {
		if (!color || color === 'transparent' || color === 'rgba(0, 0, 0, 0)') return;
		const key = color + '|' + property + '|' + context;
		const cur = counts.get(key);
		if (cur) { cur.count++; } else { counts.set(key, { color, property, context, count: 1 }); }
	};
	for (const el of document.querySelectorAll('body, body *')) {
		if (budget-- <= 0) break;
		const cs = getComputedStyle(el);
		if (!visible(el, cs)) continue;
		const context = contextFor(el);
		tally(cs.backgroundColor, 'background', context);
		if (el.textContent && el.textContent.trim()) tally(cs.color, 'text', context);
		if (cs.borderTopStyle !== 'none' && parseFloat(cs.borderTopWidth) > 0) {
			tally(cs.borderTopColor, 'border', context);
		}
	}
	return Array.from(counts.values());
}`

const typographyJS = `() => {` + jsPrelude + jsBudget + `
	const counts = new Map();
	const selector = 'h1,h2,h3,h4,h5,h6,p,a,button,li,span,blockquote,label,input,body';
	for (const el of document.querySelectorAll(selector)) {
		if (budget-- <= 0) break;
		const cs = getComputedStyle(el);
		if (!visible(el, cs)) continue;
		const hasText = el.tagName === 'INPUT'
			? Boolean(el.value || el.placeholder)
			: Boolean(el.textContent && el.textContent.trim());
		if (el.tagName !== 'BODY' && !hasText) continue;
		const o = {
			family: cs.fontFamily,
			size: cs.fontSize,
			weight: cs.fontWeight,
			lineHeight: cs.lineHeight,
			letterSpacing: cs.letterSpacing,
			context: contextFor(el),
		};
		const key = [o.family, o.size, o.weight, o.lineHeight, o.letterSpacing, o.context].join('|');
		const cur = counts.get(key);
		if (cur) { cur.count++; } else { counts.set(key, { ...o, count: 1 }); }
	}
	return Array.from(counts.values());
}`

const spacingJS = `() => {` + jsPrelude + jsBudget + `
	const counts = new Map();
	const props = ['paddingTop', 'paddingRight', 'paddingBottom', 'paddingLeft',
		'marginTop', 'marginRight', 'marginBottom', 'marginLeft'];
	for (const el of document.querySelectorAll('body *')) {
		if (budget-- <= 0) break;
		const cs = getComputedStyle(el);
		if (!visible(el, cs)) continue;
		const context = contextFor(el);
		for (const prop of props) {
			const value = cs[prop];
			if (!value || value === '0px' || value.startsWith('-') || !value.endsWith('px')) continue;
			const key = value + '|' + context;
			const cur = counts.get(key);
			if (cur) { cur.count++; } else { counts.set(key, { value, context, count: 1 }); }
		}
	}
	return Array.from(counts.values());
}`

const radiusJS = `() => {` + jsPrelude + jsBudget + `
	const counts = new Map();
	for (const el of document.querySelectorAll('body *')) {
		if (budget-- <= 0) break;
		const cs = getComputedStyle(el);
		if (!visible(el, cs)) continue;
		const value = cs.borderTopLeftRadius;
		if (!value || value === '0px') continue;
		const context = contextFor(el);
		const key = value + '|' + context;
		const cur = counts.get(key);
		if (cur) { cur.count++; } else { counts.set(key, { value, context, count: 1 }); }
	}
	return Array.from(counts.values());
}`

const bordersJS = `() => {` + jsPrelude + jsBudget + `
	const counts = new Map();
	for (const el of document.querySelectorAll('body *')) {
		if (budget-- <= 0) break;
		const cs = getComputedStyle(el);
		if (!visible(el, cs)) continue;
		if (cs.borderTopStyle === 'none' || parseFloat(cs.borderTopWidth) <= 0) continue;
		const o = {
			width: cs.borderTopWidth,
			style: cs.borderTopStyle,
			color: cs.borderTopColor,
			context: contextFor(el),
		};
		const key = [o.width, o.style, o.color, o.context].join('|');
		const cur = counts.get(key);
		if (cur) { cur.count++; } else { counts.set(key, { ...o, count: 1 }); }
	}
	return Array.from(counts.values());
}`

const shadowsJS = `() => {` + jsPrelude + jsBudget + `
	const counts = new Map();
	for (const el of document.querySelectorAll('body *')) {
		if (budget-- <= 0) break;
		const cs = getComputedStyle(el);
		if (!visible(el, cs)) continue;
		const shadow = cs.boxShadow;
		if (!shadow || shadow === 'none') continue;
		const context = contextFor(el);
		const key = shadow + '|' + context;
		const cur = counts.get(key);
		if (cur) { cur.count++; } else { counts.set(key, { shadow, context, count: 1 }); }
	}
	return Array.from(counts.values());
}`

// logoJS scores candidate logo elements by position, naming hints and size.
// It returns every scored candidate; the host picks the winner.
const logoJS = `() => {` + jsPrelude + `
	const candidates = [];
	const plausible = (r) => r.width >= 16 && r.width <= 600 && r.height >= 10 && r.height <= 300;
	for (const img of document.querySelectorAll('img')) {
		const cs = getComputedStyle(img);
		if (!visible(img, cs)) continue;
		const r = img.getBoundingClientRect();
		const alt = (img.getAttribute('alt') || '').toLowerCase();
		const hint = (alt + ' ' + (typeof img.className === 'string' ? img.className : '') + ' ' + (img.src || '')).toLowerCase();
		let score = 0;
		if (hint.includes('logo')) score += 3;
		if (hint.includes('brand')) score += 2;
		if (img.closest('header, nav, [class*="logo" i]')) score += 2;
		if (r.top < 150) score += 1;
		if (plausible(r)) score += 1;
		if (score <= 0) continue;
		candidates.push({
			url: img.currentSrc || img.src || '',
			alt: img.getAttribute('alt') || '',
			kind: 'img',
			width: r.width,
			height: r.height,
			score,
		});
	}
	for (const svg of document.querySelectorAll('header svg, nav svg, a[href="/"] svg, [class*="logo" i] svg')) {
		const cs = getComputedStyle(svg);
		if (!visible(svg, cs)) continue;
		const r = svg.getBoundingClientRect();
		let score = 2;
		if (r.top < 150) score += 1;
		if (plausible(r)) score += 1;
		candidates.push({
			url: '',
			alt: svg.getAttribute('aria-label') || '',
			kind: 'svg',
			width: r.width,
			height: r.height,
			score,
		});
	}
	return candidates;
}`
