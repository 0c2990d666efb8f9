package usecase

// chatPage is the single-page chat client. Styling is intentionally minimal;
// the page only exercises the JSON API.
const chatPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>NutriGenie - AI Dietitian</title>
<style>
	body { font-family: Arial, sans-serif; margin: 0; background: #f9fafb; color: #111827; }
	.container { max-width: 760px; margin: 0 auto; padding: 16px; }
	h1 { color: #059669; }
	.disclaimer { font-size: 12px; color: #6b7280; margin-bottom: 12px; }
	.prefs button, .actions button { margin-right: 8px; padding: 8px 12px; border: 1px solid #d1d5db; border-radius: 8px; background: #fff; cursor: pointer; }
	.prefs button.active { background: #059669; color: #fff; border-color: #059669; }
	#messages { margin: 16px 0; }
	.msg { padding: 10px 14px; border-radius: 12px; margin-bottom: 8px; }
	.msg.user { background: #4f46e5; color: #fff; margin-left: 20%; }
	.msg.assistant { background: #fff; border: 1px solid #e5e7eb; margin-right: 20%; }
	.msg .who { font-size: 11px; opacity: .7; margin-bottom: 4px; }
	.msg .bullet::before { content: "\2022  "; color: #059669; }
	.composer { display: flex; gap: 8px; }
	.composer input[type=text] { flex: 1; padding: 10px; border: 1px solid #d1d5db; border-radius: 8px; }
	.composer button { padding: 10px 16px; background: #059669; color: #fff; border: 0; border-radius: 8px; cursor: pointer; }
	.composer button:disabled { opacity: .5; }
	.suggestions button { display: block; margin: 6px 0; padding: 8px 12px; border: 1px solid #e5e7eb; border-radius: 8px; background: #fff; cursor: pointer; text-align: left; width: 100%; }
</style>
</head>
<body>
<div class="container">
	<h1>NutriGenie</h1>
	<div class="disclaimer">AI-generated guidance, not a substitute for professional medical advice.</div>
	<div class="prefs" id="prefs">
		<button data-pref="Vegetarian">Vegetarian</button>
		<button data-pref="Eggetarian">Eggetarian</button>
		<button data-pref="Non-Vegetarian" class="active">Non-Veg</button>
	</div>
	<div class="actions" style="margin-top:8px">
		<button onclick="newChat()">New Chat</button>
		<button onclick="window.location='/api/export'">Download PDF</button>
	</div>
	<div class="suggestions" id="suggestions">
		<button onclick="sendText('Suggest a 7-day Indian diet plan for weight loss')">Weight Loss (Indian) - Roti, Dal, and Rice based plan</button>
		<button onclick="sendText('I have high sugar levels (Diabetes). What Indian foods should I avoid?')">Manage Diabetes - Tips for Indian breakfasts &amp; dinners</button>
	</div>
	<div id="messages"></div>
	<form class="composer" onsubmit="return submitForm(event)">
		<input type="text" id="text" placeholder="Ask about food, diets, or attach a medical report...">
		<input type="file" id="attachment" accept="image/*,application/pdf">
		<button type="submit" id="send">Send</button>
	</form>
</div>
<script>
function spanHTML(s) {
	var div = document.createElement('div');
	div.innerText = s.text;
	return s.bold ? '<strong>' + div.innerHTML + '</strong>' : div.innerHTML;
}
function blockHTML(b) {
	var inner = (b.spans || []).map(spanHTML).join('');
	if (b.kind === 'gap') return '<div style="height:8px"></div>';
	if (b.kind === 'bullet') return '<div class="bullet">' + inner + '</div>';
	return '<div>' + inner + '</div>';
}
function renderState(state) {
	var el = document.getElementById('messages');
	el.innerHTML = '';
	(state.messages || []).forEach(function (m) {
		var div = document.createElement('div');
		div.className = 'msg ' + m.role;
		var who = m.role === 'user' ? 'You' : 'NutriGenie';
		div.innerHTML = '<div class="who">' + who + '</div>' + (m.blocks || []).map(blockHTML).join('');
		el.appendChild(div);
	});
	document.getElementById('send').disabled = !!state.busy;
	document.getElementById('suggestions').style.display = state.started ? 'none' : 'block';
	window.scrollTo(0, document.body.scrollHeight);
}
function refresh() {
	fetch('/api/messages').then(function (r) { return r.json(); }).then(renderState);
}
function submitForm(e) {
	e.preventDefault();
	var form = new FormData();
	form.append('text', document.getElementById('text').value);
	var file = document.getElementById('attachment').files[0];
	if (file) form.append('attachment', file);
	document.getElementById('text').value = '';
	document.getElementById('attachment').value = '';
	document.getElementById('send').disabled = true;
	fetch('/api/chat', { method: 'POST', body: form }).then(refresh, refresh);
	setTimeout(refresh, 50);
	return false;
}
function sendText(text) {
	var form = new FormData();
	form.append('text', text);
	fetch('/api/chat', { method: 'POST', body: form }).then(refresh, refresh);
	setTimeout(refresh, 50);
}
function newChat() {
	fetch('/api/chat/new', { method: 'POST' }).then(refresh);
}
document.getElementById('prefs').addEventListener('click', function (e) {
	var pref = e.target.getAttribute('data-pref');
	if (!pref) return;
	fetch('/api/preference', {
		method: 'PUT',
		headers: { 'Content-Type': 'application/json' },
		body: JSON.stringify({ preference: pref })
	}).then(function () {
		document.querySelectorAll('#prefs button').forEach(function (b) { b.classList.remove('active'); });
		e.target.classList.add('active');
	});
});
refresh();
</script>
</body>
</html>
`
