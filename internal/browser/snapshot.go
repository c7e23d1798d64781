package browser

import "fmt"

// annotateScript walks the visible DOM, tags interactive elements with
// data-ai-id attributes and returns an indented text tree of the page.
// Elements outside the viewport are skipped so the agent has to scroll,
// and text is clipped to keep the LLM context small.
const annotateScript = `() => {
	let idCounter = 1;
	const interactiveTags = new Set(['a', 'button', 'input', 'textarea', 'select', 'details', 'summary']);

	document.querySelectorAll('[data-ai-id]').forEach(el => el.removeAttribute('data-ai-id'));

	function cleanText(text) {
		if (!text) return '';
		let res = text.replace(/\s+/g, ' ').trim();
		if (res.length > 100) {
			return res.slice(0, 100) + '...';
		}
		return res;
	}

	function isVisible(el) {
		if (!el || !el.getBoundingClientRect) return false;

		if (el.getAttribute('aria-hidden') === 'true') return false;

		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);

		const inViewport = (
			rect.top < window.innerHeight &&
			rect.bottom > 0 &&
			rect.left < window.innerWidth &&
			rect.right > 0
		);

		return rect.width > 0 && rect.height > 0 &&
			style.visibility !== 'hidden' &&
			style.display !== 'none' &&
			style.opacity !== '0' &&
			inViewport;
	}

	function isInteractive(el) {
		const tag = el.tagName.toLowerCase();
		const role = (el.getAttribute('role') || '').toLowerCase();
		const tabIndex = el.getAttribute('tabindex');

		return interactiveTags.has(tag) ||
			['button', 'link', 'checkbox', 'menuitem', 'tab', 'textbox', 'combobox', 'option'].includes(role) ||
			(tabIndex !== null && tabIndex !== '-1') ||
			el.onclick != null;
	}

	function escapeAttr(value) {
		return value.replace(/"/g, '\\"');
	}

	function getContextFlags(el) {
		let cur = el;
		while (cur && cur !== document.body) {
			const role = (cur.getAttribute('role') || '').toLowerCase();
			if (role === 'dialog' || role === 'alertdialog' || cur.getAttribute('aria-modal') === 'true') {
				return { inDialog: true };
			}
			cur = cur.parentElement;
		}
		return { inDialog: false };
	}

	function getKind(el) {
		const tag = el.tagName.toLowerCase();
		const role = (el.getAttribute('role') || '').toLowerCase();
		const type = (el.getAttribute('type') || '').toLowerCase();

		if (tag === 'button' || role === 'button') return 'button';
		if (tag === 'a' || role === 'link') return 'link';
		if (tag === 'input') {
			if (type === 'checkbox') return 'checkbox';
			if (type === 'radio') return 'radio';
			if (type === 'search') return 'search';
			return 'input';
		}
		if (tag === 'select' || role === 'combobox') return 'select';
		return '';
	}

	function findActiveModal() {
		const selectors = ['[role="dialog"]', '[role="alertdialog"]', '[aria-modal="true"]', '.modal', '.overlay'];
		const candidates = Array.from(document.querySelectorAll(selectors.join(',')));
		let best = null;
		let bestZ = -Infinity;
		for (const el of candidates) {
			if (!isVisible(el)) continue;
			let z = parseInt(window.getComputedStyle(el).zIndex || '0', 10);
			if (Number.isNaN(z)) z = 0;
			if (z >= bestZ) {
				bestZ = z;
				best = el;
			}
		}
		return best;
	}

	// When a modal is open, everything behind it is noise.
	const activeModal = findActiveModal();
	const root = activeModal || document.body;
	const header = activeModal ? "=== ACTIVE DIALOG ===\n" : "";

	function traverse(node, depth) {
		if (!node || depth > 20) return '';

		if (node.nodeType === Node.TEXT_NODE) {
			const text = cleanText(node.textContent);
			if (text.length > 2) {
				return '  '.repeat(depth) + text + '\n';
			}
			return '';
		}

		if (node.nodeType !== Node.ELEMENT_NODE) return '';

		const el = node;
		if (!isVisible(el)) return '';

		const tag = el.tagName.toLowerCase();
		if (['script', 'style', 'svg', 'path', 'noscript'].includes(tag)) return '';

		let output = '';
		const prefix = '  '.repeat(depth);

		if (isInteractive(el)) {
			const aiId = idCounter++;
			el.setAttribute('data-ai-id', String(aiId));

			const parts = ['<' + tag];

			let label = cleanText(el.innerText || el.textContent || '');
			if (!label) label = cleanText(el.getAttribute('aria-label') || '');
			if (!label) label = cleanText(el.getAttribute('title') || '');
			if ((tag === 'input' || tag === 'textarea') && !label) {
				label = cleanText(el.getAttribute('placeholder') || '');
			}
			if (label) parts.push('label="' + escapeAttr(label) + '"');

			const kind = getKind(el);
			if (kind) parts.push('kind="' + kind + '"');

			if (getContextFlags(el).inDialog) parts.push('context="dialog"');

			if (tag === 'input' || tag === 'textarea') {
				const val = cleanText(el.value);
				if (val) parts.push('value="' + escapeAttr(val) + '"');
			}

			output += prefix + '[' + aiId + '] ' + parts.join(' ') + '>\n';
		} else if (['h1', 'h2', 'h3', 'h4', 'h5'].includes(tag)) {
			output += prefix + '<' + tag + '> ' + cleanText(el.innerText) + '\n';
		}

		for (const child of el.childNodes) {
			output += traverse(child, depth + 1);
		}

		return output;
	}

	return header + traverse(root, 0);
}`

const scrollDownScript = `window.scrollBy({top: 300, behavior: 'smooth'});`

func highlightScript(selector string) string {
	return fmt.Sprintf(`(() => {
		const el = document.querySelector("%s");
		if (el) {
			el.style.outline = "5px solid red";
			el.style.zIndex = "999999";
			el.scrollIntoView({behavior: "smooth", block: "center", inline: "center"});
		}
	})()`, selector)
}
